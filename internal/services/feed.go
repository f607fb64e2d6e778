package services

import (
	"context"
	"errors"
	"time"

	"github.com/ph46m/ttknew/internal/apperr"
	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/repository"
	"github.com/ph46m/ttknew/internal/upstream"
	"github.com/ph46m/ttknew/pkg/logger"
	"github.com/ph46m/ttknew/pkg/queue"
)

// feedCacheKey is the single cache entry for the flattened feed; video
// appends invalidate it.
const feedCacheKey = "feed:videos"

// FeedCache is the optional cache in front of the flattened feed.
// *cache.RedisClient satisfies it; a nil cache disables caching entirely.
type FeedCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// placeholderVideos is the last-resort search result, returned when both
// the remote API and the local feed are unusable.
var placeholderVideos = []models.FeedEntry{
	{
		NoWatermark: "https://www.w3schools.com/html/mov_bbb.mp4",
		Title:       "Vídeo de Fallback 1",
		Music:       models.MusicInfo{Title: "Música de Fallback 1"},
	},
	{
		NoWatermark: "https://www.w3schools.com/html/mov_bbb.mp4",
		Title:       "Vídeo de Fallback 2",
		Music:       models.MusicInfo{Title: "Música de Fallback 2"},
	},
}

type FeedService struct {
	userRepo *repository.UserRepository
	search   *upstream.SearchClient
	cache    FeedCache
	cacheTTL time.Duration
	producer queue.Publisher
	logger   *logger.Logger
}

func NewFeedService(userRepo *repository.UserRepository, search *upstream.SearchClient, cache FeedCache, cacheTTL time.Duration, producer queue.Publisher, logger *logger.Logger) *FeedService {
	return &FeedService{
		userRepo: userRepo,
		search:   search,
		cache:    cache,
		cacheTTL: cacheTTL,
		producer: producer,
		logger:   logger,
	}
}

// Feed flattens every user's video list into one sequence, tagging each
// entry with the owner's current username and avatar. Order follows
// directory order; there is no pagination.
func (s *FeedService) Feed(ctx context.Context) ([]models.FeedEntry, error) {
	if s.cache != nil {
		var cached []models.FeedEntry
		if err := s.cache.GetJSON(ctx, feedCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.FeedEntry, 0)
	for _, user := range users {
		for _, video := range user.Videos {
			entries = append(entries, models.NewFeedEntry(video, user.Username, user.Profile.Avatar))
		}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, feedCacheKey, entries, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache feed")
		}
	}

	return entries, nil
}

func (s *FeedService) UserVideos(ctx context.Context, username string) ([]models.Video, error) {
	user, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}
	if user.Videos == nil {
		return []models.Video{}, nil
	}
	return user.Videos, nil
}

// AddVideo appends a video by URL to the user's list. The manual path
// carries no id, so these videos never accumulate likes.
func (s *FeedService) AddVideo(ctx context.Context, username, videoURL string) (*models.Video, error) {
	user, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}
	if videoURL == "" {
		return nil, apperr.ErrMissingVideoURL
	}

	video, err := s.userRepo.AppendVideo(ctx, username, models.Video{
		URL:     videoURL,
		Caption: models.ManualCaption,
		Music:   models.DefaultMusic,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)

	event := queue.NewEvent(queue.EventVideoAdded, queue.VideoEventData{
		Username: username,
		URL:      videoURL,
	})
	if err := s.producer.Publish(ctx, username, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish video added event")
	}

	return video, nil
}

// Search proxies the query to the remote video API with a layered
// fallback: a 2xx response without a result array falls back to the local
// feed, and any other failure (transport, HTTP status, malformed body, or
// a broken local feed) returns the fixed placeholder set. The caller
// always gets a successful result.
func (s *FeedService) Search(ctx context.Context, query string) (interface{}, error) {
	if query == "" {
		return nil, apperr.ErrMissingQuery
	}

	results, err := s.search.Search(ctx, query)
	if err == nil {
		return filterPlayable(results), nil
	}

	if errors.Is(err, upstream.ErrNoResults) {
		s.logger.WithField("query", query).Warn("No usable search results, falling back to local feed")
		feed, feedErr := s.Feed(ctx)
		if feedErr == nil {
			return feed, nil
		}
		s.logger.WithError(feedErr).Error("Local feed fallback failed, using placeholder videos")
		return placeholderVideos, nil
	}

	s.logger.WithError(err).WithField("query", query).Error("Search API unavailable, using placeholder videos")
	return placeholderVideos, nil
}

func (s *FeedService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, feedCacheKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate feed cache")
	}
}

// filterPlayable keeps only entries with a playable no_watermark URL.
func filterPlayable(results []map[string]interface{}) []map[string]interface{} {
	filtered := make([]map[string]interface{}, 0, len(results))
	for _, entry := range results {
		if url, ok := entry["no_watermark"].(string); ok && url != "" {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
