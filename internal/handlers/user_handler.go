package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/internal/validator"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(v *validator.Validator, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(v),
		userService: userService,
	}
}

// List - GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	var query dto.ListUsersQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.userService.List(c.Request.Context(), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create - POST /api/v1/admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.AdminCreate(c.Request.Context(), middleware.GetRoles(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateStatus - PATCH /api/v1/admin/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	targetID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateStatus(c.Request.Context(),
		middleware.GetRoles(c), targetID, models.UserStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateRoles - PATCH /api/v1/admin/users/:id/roles
func (h *UserHandler) UpdateRoles(c *gin.Context) {
	targetID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRolesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateRoles(c.Request.Context(),
		middleware.GetRoles(c), targetID, req.Roles)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
