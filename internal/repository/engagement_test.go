package repository

import (
	"context"
	"testing"

	"github.com/ph46m/ttknew/internal/models"
	"github.com/ph46m/ttknew/internal/store"
)

func TestAddLikeIsIdempotent(t *testing.T) {
	repo := NewEngagementRepository(store.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		total, err := repo.AddLike(ctx, "v1", "alice")
		if err != nil {
			t.Fatalf("AddLike #%d: %v", i+1, err)
		}
		if total != 1 {
			t.Fatalf("AddLike #%d: expected total 1, got %d", i+1, total)
		}
	}

	total, err := repo.AddLike(ctx, "v1", "bob")
	if err != nil {
		t.Fatalf("AddLike bob: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2 after second user, got %d", total)
	}
}

func TestAddCommentAppends(t *testing.T) {
	repo := NewEngagementRepository(store.NewMemoryStore())
	ctx := context.Background()

	// Duplicate comments are allowed.
	for i := 0; i < 2; i++ {
		thread, err := repo.AddComment(ctx, "v1", models.Comment{User: "alice", Text: "nice"})
		if err != nil {
			t.Fatalf("AddComment #%d: %v", i+1, err)
		}
		if len(thread) != i+1 {
			t.Fatalf("AddComment #%d: expected thread length %d, got %d", i+1, i+1, len(thread))
		}
	}

	other, err := repo.Comments(ctx, "v2")
	if err != nil {
		t.Fatalf("Comments v2: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty thread for unseen video, got %v", other)
	}
}
