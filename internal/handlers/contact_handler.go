package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub_backend/internal/services"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/internal/validator"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(v *validator.Validator, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    NewBaseHandler(v),
		contactService: contactService,
	}
}

// Submit - POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Message received"})
}
