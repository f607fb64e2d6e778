package repository

import (
	"context"

	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/store"
)

// EngagementRepository owns the likes and comments collections. Both are
// maps keyed by video id, created lazily on first engagement.
type EngagementRepository struct {
	store store.Store
}

func NewEngagementRepository(store store.Store) *EngagementRepository {
	return &EngagementRepository{store: store}
}

// AddLike records username against the video, suppressing duplicates, and
// returns the resulting like count.
func (r *EngagementRepository) AddLike(ctx context.Context, videoID, username string) (int, error) {
	likes := map[string][]string{}
	total := 0
	err := r.store.Update(ctx, store.CollectionLikes, &likes, func() (bool, error) {
		current := likes[videoID]
		for _, name := range current {
			if name == username {
				total = len(current)
				return false, nil
			}
		}
		likes[videoID] = append(current, username)
		total = len(likes[videoID])
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Likes returns the whole like document, for joining totals onto profiles.
func (r *EngagementRepository) Likes(ctx context.Context) (map[string][]string, error) {
	likes := map[string][]string{}
	if err := r.store.Load(ctx, store.CollectionLikes, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// AddComment appends unconditionally and returns the video's full thread.
func (r *EngagementRepository) AddComment(ctx context.Context, videoID string, comment models.Comment) ([]models.Comment, error) {
	comments := map[string][]models.Comment{}
	var thread []models.Comment
	err := r.store.Update(ctx, store.CollectionComments, &comments, func() (bool, error) {
		comments[videoID] = append(comments[videoID], comment)
		thread = comments[videoID]
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (r *EngagementRepository) Comments(ctx context.Context, videoID string) ([]models.Comment, error) {
	comments := map[string][]models.Comment{}
	if err := r.store.Load(ctx, store.CollectionComments, &comments); err != nil {
		return nil, err
	}
	return comments[videoID], nil
}
