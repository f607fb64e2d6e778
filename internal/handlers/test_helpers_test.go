package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/internal/repository"
	"github.com/ph46m/ttknew/internal/services"
	"github.com/ph46m/ttknew/internal/store"
	"github.com/ph46m/ttknew/internal/upstream"
	"github.com/ph46m/ttknew/pkg/logger"
	"github.com/ph46m/ttknew/pkg/queue"
)

// newTestRouter wires the full API surface against an in-memory store and
// the given fake upstreams.
func newTestRouter(t *testing.T, hostURL, searchURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	documents := store.NewMemoryStore()
	userRepo := repository.NewUserRepository(documents)
	engRepo := repository.NewEngagementRepository(documents)
	log := logger.NewNop()
	producer := queue.NopPublisher{}

	fileHost := upstream.NewFileHost(hostURL, 2*time.Second)
	searchClient := upstream.NewSearchClient(searchURL, "test-key", 2*time.Second)

	userService := services.NewUserService(userRepo, engRepo, producer, log)
	engService := services.NewEngagementService(engRepo, userRepo, producer, log)
	feedService := services.NewFeedService(userRepo, searchClient, nil, 0, producer, log)
	uploadService := services.NewUploadService(userRepo, fileHost, nil, producer, log)

	userHandler := NewUserHandler(userService, "test-secret", time.Hour)
	engHandler := NewEngagementHandler(engService)
	feedHandler := NewFeedHandler(feedService)
	uploadHandler := NewUploadHandler(uploadService)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/register", userHandler.Register)
		api.POST("/login", userHandler.Login)
		api.GET("/user/:username", userHandler.GetProfile)
		api.GET("/user/:username/videos", feedHandler.UserVideos)
		api.POST("/user/add-video", feedHandler.AddVideo)
		api.POST("/follow", userHandler.Follow)
		api.POST("/unfollow", userHandler.Unfollow)
		api.POST("/like", engHandler.Like)
		api.POST("/comment", engHandler.Comment)
		api.POST("/comments", engHandler.ListComments)
		api.GET("/feed", feedHandler.Feed)
		api.POST("/videos", feedHandler.SearchVideos)
		api.POST("/search/users", userHandler.SearchUsers)
		api.POST("/upload", uploadHandler.Upload)
	}
	router.POST("/atualizar-perfil", userHandler.UpdateProfile)
	router.GET("/search", feedHandler.SearchVideosGet)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal %q: %v", resp.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, router *gin.Engine, username, password string) {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", username, resp.Code, resp.Body.String())
	}
}

func uploadForm(t *testing.T, router *gin.Engine, fields map[string]string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if withFile {
		part, err := writer.CreateFormFile("file", "clip.mp4")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write([]byte("video-bytes")); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}
