package services

import (
	"testing"

	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/repository"
	"github.com/ph46m/ttknew/internal/store"
	"github.com/ph46m/ttknew/pkg/logger"
	"github.com/ph46m/ttknew/pkg/queue"
)

type testEnv struct {
	userRepo *repository.UserRepository
	engRepo  *repository.EngagementRepository
	users    *UserService
	eng      *EngagementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	documents := store.NewMemoryStore()
	userRepo := repository.NewUserRepository(documents)
	engRepo := repository.NewEngagementRepository(documents)
	log := logger.NewNop()
	producer := queue.NopPublisher{}

	return &testEnv{
		userRepo: userRepo,
		engRepo:  engRepo,
		users:    NewUserService(userRepo, engRepo, producer, log),
		eng:      NewEngagementService(engRepo, userRepo, producer, log),
	}
}

func videoWithID(id string) models.Video {
	return models.Video{ID: id, URL: "http://files/" + id + ".mp4", Caption: "clip " + id, Music: "track"}
}
