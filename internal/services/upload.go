package services

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/ph46m/ttknew/internal/apperr"
	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/repository"
	"github.com/ph46m/ttknew/internal/upstream"
	"github.com/ph46m/ttknew/pkg/logger"
	"github.com/ph46m/ttknew/pkg/queue"
)

// UploadService runs the upload pipeline: forward the binary payload to
// the external file host, then append the hosted video to the uploader's
// record. Nothing is persisted before the final append, so a failure at
// any step aborts cleanly with no rollback.
type UploadService struct {
	userRepo *repository.UserRepository
	host     *upstream.FileHost
	cache    FeedCache
	producer queue.Publisher
	logger   *logger.Logger
}

func NewUploadService(userRepo *repository.UserRepository, host *upstream.FileHost, cache FeedCache, producer queue.Publisher, logger *logger.Logger) *UploadService {
	return &UploadService{
		userRepo: userRepo,
		host:     host,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

func (s *UploadService) Upload(ctx context.Context, file io.Reader, username, caption string) (string, error) {
	if file == nil {
		return "", apperr.ErrMissingFile
	}
	if username == "" {
		return "", apperr.ErrMissingUsername
	}

	videoURL, err := s.host.Upload(ctx, file)
	if err != nil {
		s.logger.WithError(err).WithField("username", username).Error("File host upload failed")
		return "", apperr.ErrUploadFailed
	}

	video := models.Video{
		ID:      strconv.FormatInt(time.Now().UnixMilli(), 10),
		URL:     videoURL,
		Caption: caption,
		Music:   models.DefaultMusic,
	}
	if video.Caption == "" {
		video.Caption = models.DefaultCaption
	}

	stored, err := s.userRepo.AppendVideo(ctx, username, video)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return "", err
		}
		s.logger.WithError(err).WithField("username", username).Error("Failed to persist uploaded video")
		return "", apperr.ErrUploadFailed
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, feedCacheKey); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate feed cache")
		}
	}

	event := queue.NewEvent(queue.EventVideoUploaded, queue.VideoEventData{
		Username: username,
		VideoID:  stored.ID,
		URL:      stored.URL,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish video uploaded event")
	}

	s.logger.WithFields(map[string]interface{}{
		"username": username,
		"video_id": stored.ID,
	}).Info("Video uploaded successfully")

	return videoURL, nil
}
