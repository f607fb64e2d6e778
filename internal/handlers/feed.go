package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/internal/services"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) Feed(c *gin.Context) {
	entries, err := h.feedService.Feed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resultado": entries})
}

func (h *FeedHandler) UserVideos(c *gin.Context) {
	videos, err := h.feedService.UserVideos(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

type addVideoRequest struct {
	Username string `json:"username"`
	VideoURL string `json:"videoUrl"`
}

func (h *FeedHandler) AddVideo(c *gin.Context) {
	var req addVideoRequest
	_ = c.ShouldBindJSON(&req)

	video, err := h.feedService.AddVideo(c.Request.Context(), req.Username, req.VideoURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true, "videoUrl": video.URL})
}

// SearchVideos serves POST /api/videos with the query in the body.
func (h *FeedHandler) SearchVideos(c *gin.Context) {
	var req queryRequest
	_ = c.ShouldBindJSON(&req)

	h.search(c, req.Query)
}

// SearchVideosGet serves GET /search with the query as a URL parameter.
func (h *FeedHandler) SearchVideosGet(c *gin.Context) {
	h.search(c, c.Query("query"))
}

func (h *FeedHandler) search(c *gin.Context, query string) {
	resultado, err := h.feedService.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resultado": resultado})
}
