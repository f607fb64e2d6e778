package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/internal/apperr"
	"github.com/ph46m/ttknew/internal/services"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload accepts a multipart form with the video under "file" plus
// "username" and an optional "caption".
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.ErrMissingFile)
		return
	}

	username := c.PostForm("username")
	if username == "" {
		respondError(c, apperr.ErrMissingUsername)
		return
	}
	caption := c.PostForm("caption")

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperr.ErrUploadFailed)
		return
	}
	defer file.Close()

	videoURL, err := h.uploadService.Upload(c.Request.Context(), file, username, caption)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true, "videoUrl": videoURL})
}
