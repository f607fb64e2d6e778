package repository

import (
	"context"

	"github.com/ph46m/ttknew/internal/apperr"
	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/store"
)

// UserRepository owns the users collection. Every mutation is a single
// load-mutate-save pass under the collection lock, so multi-record
// invariants (the reciprocal follow lists in particular) are updated in
// one persisted write.
type UserRepository struct {
	store store.Store
}

func NewUserRepository(store store.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Load(ctx, store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns nil without error when the user does not exist.
func (r *UserRepository) Get(ctx context.Context, username string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if u := findUser(users, username); u != nil {
		out := *u
		return &out, nil
	}
	return nil, nil
}

func (r *UserRepository) Create(ctx context.Context, username, password string) error {
	var users []models.User
	return r.store.Update(ctx, store.CollectionUsers, &users, func() (bool, error) {
		if findUser(users, username) != nil {
			return false, apperr.ErrUserExists
		}
		users = append(users, *models.NewUser(username, password))
		return true, nil
	})
}

// UpdateProfile applies a partial update: nil fields stay untouched, so
// an explicit empty string still clears the stored value.
func (r *UserRepository) UpdateProfile(ctx context.Context, username string, bio, avatar *string) error {
	var users []models.User
	return r.store.Update(ctx, store.CollectionUsers, &users, func() (bool, error) {
		user := findUser(users, username)
		if user == nil {
			return false, apperr.ErrUserNotFound
		}
		if bio != nil {
			user.Profile.Bio = *bio
		}
		if avatar != nil {
			user.Profile.Avatar = *avatar
		}
		return true, nil
	})
}

// Follow appends target to the follower's seguindo list and the follower
// to the target's seguidores list. Re-following is a no-op that skips the
// write entirely.
func (r *UserRepository) Follow(ctx context.Context, username, target string) error {
	var users []models.User
	return r.store.Update(ctx, store.CollectionUsers, &users, func() (bool, error) {
		user := findUser(users, username)
		targetUser := findUser(users, target)
		if user == nil || targetUser == nil {
			return false, apperr.ErrUserNotFound
		}
		if user.Following(target) {
			return false, nil
		}
		user.Profile.Seguindo = append(user.Profile.Seguindo, target)
		targetUser.Profile.Seguidores = append(targetUser.Profile.Seguidores, username)
		return true, nil
	})
}

// Unfollow removes both sides unconditionally; removing an absent entry
// is a safe no-op but the document is still rewritten.
func (r *UserRepository) Unfollow(ctx context.Context, username, target string) error {
	var users []models.User
	return r.store.Update(ctx, store.CollectionUsers, &users, func() (bool, error) {
		user := findUser(users, username)
		targetUser := findUser(users, target)
		if user == nil || targetUser == nil {
			return false, apperr.ErrUserNotFound
		}
		user.Profile.Seguindo = remove(user.Profile.Seguindo, target)
		targetUser.Profile.Seguidores = remove(targetUser.Profile.Seguidores, username)
		return true, nil
	})
}

// AppendVideo stamps the video with the owner's identity and current
// avatar before appending, and returns the stored copy.
func (r *UserRepository) AppendVideo(ctx context.Context, username string, video models.Video) (*models.Video, error) {
	var users []models.User
	var stored models.Video
	err := r.store.Update(ctx, store.CollectionUsers, &users, func() (bool, error) {
		user := findUser(users, username)
		if user == nil {
			return false, apperr.ErrUserNotFound
		}
		video.Username = username
		video.Avatar = user.Profile.Avatar
		user.Videos = append(user.Videos, video)
		stored = video
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func findUser(users []models.User, username string) *models.User {
	for i := range users {
		if users[i].Username == username {
			return &users[i]
		}
	}
	return nil
}

func remove(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
