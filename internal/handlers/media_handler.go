package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"learnhub_backend/internal/services"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/internal/validator"
	"learnhub_backend/pkg/apperrors"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(v *validator.Validator, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  NewBaseHandler(v),
		mediaService: mediaService,
	}
}

// Upload - POST /api/v1/media (multipart/form-data, поле "file")
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UploadMediaRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file in form field 'file'"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	input := &services.UploadInput{
		FileName:    fileHeader.Filename,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
		EntityType:  req.EntityType,
		Description: req.Description,
		Alt:         req.Alt,
		IsPublic:    req.IsPublic,
		UploaderIP:  c.ClientIP(),
	}
	if req.EntityID != "" {
		entityID, err := uuid.Parse(req.EntityID)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid entity_id"))
			return
		}
		input.EntityID = &entityID
	}

	media, err := h.mediaService.Upload(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// List - GET /api/v1/media
func (h *MediaHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ListMediaQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.mediaService.List(c.Request.Context(), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get - GET /api/v1/media/:id
func (h *MediaHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	mediaID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	media, err := h.mediaService.GetByID(c.Request.Context(), userID, mediaID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, media)
}

// GetURL - GET /api/v1/media/:id/url
func (h *MediaHandler) GetURL(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	mediaID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.mediaService.GetSignedURL(c.Request.Context(), userID, mediaID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete - DELETE /api/v1/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	mediaID, ok := h.ParseParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), userID, mediaID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Media deleted"})
}
