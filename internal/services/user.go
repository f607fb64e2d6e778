package services

import (
	"context"
	"strings"

	"github.com/ph46m/ttknew/internal/apperr"
	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/repository"
	"github.com/ph46m/ttknew/pkg/logger"
	"github.com/ph46m/ttknew/pkg/queue"
)

type UserService struct {
	userRepo *repository.UserRepository
	engRepo  *repository.EngagementRepository
	producer queue.Publisher
	logger   *logger.Logger
}

func NewUserService(userRepo *repository.UserRepository, engRepo *repository.EngagementRepository, producer queue.Publisher, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		engRepo:  engRepo,
		producer: producer,
		logger:   logger,
	}
}

func (s *UserService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperr.ErrInvalidData
	}

	if err := s.userRepo.Create(ctx, username, password); err != nil {
		return err
	}

	event := queue.NewEvent(queue.EventUserRegistered, map[string]interface{}{
		"username": username,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish user registered event")
	}

	s.logger.WithField("username", username).Info("User registered successfully")
	return nil
}

// Login matches username and password exactly against the stored record.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, apperr.ErrBadCredentials
	}

	s.logger.WithField("username", username).Info("User logged in successfully")
	return user, nil
}

// GetProfile returns the user record plus computed stats; total likes
// come from joining the user's video ids against the like document.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.UserWithStats, error) {
	user, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	likes, err := s.engRepo.Likes(ctx)
	if err != nil {
		return nil, err
	}

	totalLikes := 0
	for _, video := range user.Videos {
		if video.ID == "" {
			continue
		}
		totalLikes += len(likes[video.ID])
	}

	return &models.UserWithStats{
		User: *user,
		Stats: models.Stats{
			Seguindo:   len(user.Profile.Seguindo),
			Seguidores: len(user.Profile.Seguidores),
			Curtidas:   totalLikes,
		},
	}, nil
}

// UpdateProfile applies a partial update: nil means leave the field alone.
func (s *UserService) UpdateProfile(ctx context.Context, username string, bio, avatar *string) error {
	if err := s.userRepo.UpdateProfile(ctx, username, bio, avatar); err != nil {
		return err
	}

	event := queue.NewEvent(queue.EventProfileUpdated, map[string]interface{}{
		"username": username,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish profile updated event")
	}

	s.logger.WithField("username", username).Info("Profile updated successfully")
	return nil
}

func (s *UserService) Follow(ctx context.Context, username, target string) error {
	if err := s.userRepo.Follow(ctx, username, target); err != nil {
		return err
	}

	event := queue.NewEvent(queue.EventFollowCreated, queue.FollowEventData{
		Username: username,
		Target:   target,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"username": username,
		"target":   target,
	}).Info("User followed successfully")
	return nil
}

func (s *UserService) Unfollow(ctx context.Context, username, target string) error {
	if err := s.userRepo.Unfollow(ctx, username, target); err != nil {
		return err
	}

	event := queue.NewEvent(queue.EventFollowDeleted, queue.FollowEventData{
		Username: username,
		Target:   target,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow deleted event")
	}

	s.logger.WithFields(map[string]interface{}{
		"username": username,
		"target":   target,
	}).Info("User unfollowed successfully")
	return nil
}

// Search matches usernames by case-insensitive substring and returns
// usernames only.
func (s *UserService) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	if query == "" {
		return nil, apperr.ErrMissingQuery
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]models.UserSummary, 0)
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.Username), needle) {
			matches = append(matches, models.UserSummary{Username: user.Username})
		}
	}
	return matches, nil
}
