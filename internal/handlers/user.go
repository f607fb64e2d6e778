package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/internal/middleware"
	"github.com/ph46m/ttknew/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	jwtSecret   string
	jwtExpire   time.Duration
}

func NewUserHandler(userService *services.UserService, jwtSecret string, jwtExpire time.Duration) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
		jwtExpire:   jwtExpire,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	// Malformed bodies fall through as missing fields.
	_ = c.ShouldBindJSON(&req)

	if err := h.userService.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	_ = c.ShouldBindJSON(&req)

	user, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.Username, h.jwtSecret, h.jwtExpire)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":  true,
		"username": user.Username,
		"token":    token,
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.userService.UpdateProfile(c.Request.Context(), req.Username, req.Bio, req.Avatar); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true})
}

type followRequest struct {
	Username   string `json:"username"`
	TargetUser string `json:"targetUser"`
}

func (h *UserHandler) Follow(c *gin.Context) {
	var req followRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.userService.Follow(c.Request.Context(), req.Username, req.TargetUser); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	var req followRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.userService.Unfollow(c.Request.Context(), req.Username, req.TargetUser); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true})
}

type queryRequest struct {
	Query string `json:"query"`
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	var req queryRequest
	_ = c.ShouldBindJSON(&req)

	users, err := h.userService.Search(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
