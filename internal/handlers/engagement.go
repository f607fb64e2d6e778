package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/internal/services"
)

type EngagementHandler struct {
	engService *services.EngagementService
}

func NewEngagementHandler(engService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engService: engService}
}

type likeRequest struct {
	VideoID  string `json:"videoId"`
	Username string `json:"username"`
}

func (h *EngagementHandler) Like(c *gin.Context) {
	var req likeRequest
	_ = c.ShouldBindJSON(&req)

	total, err := h.engService.Like(c.Request.Context(), req.VideoID, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

type commentRequest struct {
	VideoID  string `json:"videoId"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

func (h *EngagementHandler) Comment(c *gin.Context) {
	var req commentRequest
	_ = c.ShouldBindJSON(&req)

	thread, err := h.engService.Comment(c.Request.Context(), req.VideoID, req.Username, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comentarios": thread})
}

type listCommentsRequest struct {
	VideoID string `json:"videoId"`
}

func (h *EngagementHandler) ListComments(c *gin.Context) {
	var req listCommentsRequest
	_ = c.ShouldBindJSON(&req)

	thread, err := h.engService.ListComments(c.Request.Context(), req.VideoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comentarios": thread})
}
