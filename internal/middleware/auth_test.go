package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "test-secret"

	token, err := GenerateToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid token", "Bearer " + token, "alice"},
		{"no header", "", ""},
		{"garbage token", "Bearer not-a-token", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(OptionalAuth(secret))

			var got string
			router.GET("/", func(c *gin.Context) {
				got = AuthUser(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			if got != tt.want {
				t.Fatalf("expected auth user %q, got %q", tt.want, got)
			}
		})
	}
}
