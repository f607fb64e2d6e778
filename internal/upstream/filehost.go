// Package upstream holds the HTTP clients for the third-party services
// the backend proxies to: the file host that stores uploaded videos and
// the video search API.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// FileHost uploads video payloads to a catbox-style hosting API: a
// multipart POST answered with the hosted URL as plain text, or a body
// starting with "error" when the host rejects the file.
type FileHost struct {
	endpoint string
	client   *http.Client
}

func NewFileHost(endpoint string, timeout time.Duration) *FileHost {
	return &FileHost{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (h *FileHost) Upload(ctx context.Context, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("reqtype", "fileupload"); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("fileToUpload", "video.mp4")
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file into upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach file host: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read file host response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("file host returned status %d", resp.StatusCode)
	}

	videoURL := strings.TrimSpace(string(raw))
	if videoURL == "" || strings.HasPrefix(videoURL, "error") {
		return "", fmt.Errorf("file host rejected upload: %s", videoURL)
	}

	return videoURL, nil
}
