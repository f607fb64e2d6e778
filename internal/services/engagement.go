package services

import (
	"context"

	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/repository"
	"github.com/ph46m/ttknew/pkg/logger"
	"github.com/ph46m/ttknew/pkg/queue"
)

type EngagementService struct {
	engRepo  *repository.EngagementRepository
	userRepo *repository.UserRepository
	producer queue.Publisher
	logger   *logger.Logger
}

func NewEngagementService(engRepo *repository.EngagementRepository, userRepo *repository.UserRepository, producer queue.Publisher, logger *logger.Logger) *EngagementService {
	return &EngagementService{
		engRepo:  engRepo,
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

// Like records an idempotent like and returns the video's like total.
func (s *EngagementService) Like(ctx context.Context, videoID, username string) (int, error) {
	total, err := s.engRepo.AddLike(ctx, videoID, username)
	if err != nil {
		return 0, err
	}

	event := queue.NewEvent(queue.EventLikeCreated, queue.EngagementEventData{
		VideoID:  videoID,
		Username: username,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish like created event")
	}

	return total, nil
}

// Comment appends unconditionally and returns the video's full thread.
// Text is stored as received: no length or content validation.
func (s *EngagementService) Comment(ctx context.Context, videoID, username, text string) ([]models.Comment, error) {
	thread, err := s.engRepo.AddComment(ctx, videoID, models.Comment{User: username, Text: text})
	if err != nil {
		return nil, err
	}

	event := queue.NewEvent(queue.EventCommentCreated, queue.EngagementEventData{
		VideoID:  videoID,
		Username: username,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish comment created event")
	}

	return thread, nil
}

// ListComments returns the stored thread enriched with each commenter's
// current avatar, empty when the commenter no longer resolves.
func (s *EngagementService) ListComments(ctx context.Context, videoID string) ([]models.CommentWithAvatar, error) {
	comments, err := s.engRepo.Comments(ctx, videoID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	avatars := make(map[string]string, len(users))
	for _, user := range users {
		avatars[user.Username] = user.Profile.Avatar
	}

	enriched := make([]models.CommentWithAvatar, 0, len(comments))
	for _, comment := range comments {
		enriched = append(enriched, models.CommentWithAvatar{
			Comment: comment,
			Avatar:  avatars[comment.User],
		})
	}
	return enriched, nil
}
