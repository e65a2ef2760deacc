package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// MediaHandler handles admin media upload endpoints (question figures).
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadMedia godoc
// POST /api/v1/admin/media/upload
// Uploads an image to the hosting service and returns its public URL.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	url, err := h.mediaService.Upload(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		failUpload(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url})
}

// failUpload maps media service errors onto response codes. Shared with the
// candidate photo-answer path.
func failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrUploadFailed):
		response.Fail(c, http.StatusBadGateway, response.ErrUploadFailed)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
