package onboarding

import (
	"context"
	"testing"

	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/internal/testutil"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

func TestEnsureProgressInitialized(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	for _, term := range []string{"a", "b", "c"} {
		word := db.Word{UserID: 700, Term: term, Translation: term}
		if err := db.DB.Create(&word).Error; err != nil {
			t.Fatalf("failed to create word: %v", err)
		}
	}

	reviewer := review.NewScheduler(review.NewGormProgressStore(db.DB), nil, nil, nil, nil)

	created, err := EnsureProgressInitialized(ctx, 700, reviewer)
	if err != nil {
		t.Fatalf("EnsureProgressInitialized returned error: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 created rows, got %d", created)
	}

	// A second run finds everything in place already.
	created, err = EnsureProgressInitialized(ctx, 700, reviewer)
	if err != nil {
		t.Fatalf("second EnsureProgressInitialized returned error: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 created rows on the second run, got %d", created)
	}
}

func TestEnsureProgressInitializedNoWords(t *testing.T) {
	testutil.SetupTestDB(t)

	reviewer := review.NewScheduler(review.NewGormProgressStore(db.DB), nil, nil, nil, nil)
	created, err := EnsureProgressInitialized(context.Background(), 700, reviewer)
	if err != nil {
		t.Fatalf("EnsureProgressInitialized returned error: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 created rows, got %d", created)
	}
}
