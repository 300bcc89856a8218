package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/pkg/storage"
)

// UploadHandler hands out presigned URLs for direct-to-bucket media uploads
type UploadHandler struct {
	uploader storage.Uploader
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads/presign", h.PresignUpload)
}

// PresignRequest defines the request body for a presigned upload
type PresignRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
	MediaType   string `json:"media_type" validate:"required,oneof=profile_picture post_media"`
}

// PresignUpload returns a presigned PUT URL with a uuid object key
func (h *UploadHandler) PresignUpload(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if h.uploader == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Uploads are not configured")
	}

	var req PresignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ext := filepath.Ext(req.FileName)
	key := fmt.Sprintf("%s/%d/%s%s", req.MediaType, currentUserID, uuid.NewString(), ext)

	presigned, err := h.uploader.PresignPut(c.Request().Context(), key, req.ContentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, presigned)
}
