package wordset

import (
	"context"
	"errors"
	"testing"

	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/internal/testutil"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

func createWord(t *testing.T, userID int64, term string) uint {
	t.Helper()
	word := db.Word{UserID: userID, Term: term, Translation: term + "-tr"}
	if err := db.DB.Create(&word).Error; err != nil {
		t.Fatalf("failed to create word %q: %v", term, err)
	}
	return word.ID
}

func TestCreateSetAndResolve(t *testing.T) {
	testutil.SetupTestDB(t)
	svc := NewService(db.DB)
	ctx := context.Background()

	first := createWord(t, 700, "apple")
	second := createWord(t, 700, "pear")

	set, err := svc.CreateSet(ctx, 700, "fruit", []string{"apple", "pear"})
	if err != nil {
		t.Fatalf("CreateSet returned error: %v", err)
	}

	ids, err := svc.ResolveWordIDs(ctx, 700, set.ID)
	if err != nil {
		t.Fatalf("ResolveWordIDs returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != first || ids[1] != second {
		t.Fatalf("expected ids [%d %d], got %v", first, second, ids)
	}
}

func TestCreateSetUnknownTerm(t *testing.T) {
	testutil.SetupTestDB(t)
	svc := NewService(db.DB)

	createWord(t, 700, "apple")
	_, err := svc.CreateSet(context.Background(), 700, "fruit", []string{"apple", "durian"})
	if !errors.Is(err, review.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown term, got %v", err)
	}
}

func TestCreateSetValidation(t *testing.T) {
	testutil.SetupTestDB(t)
	svc := NewService(db.DB)
	ctx := context.Background()

	if _, err := svc.CreateSet(ctx, 700, "  ", []string{"apple"}); !errors.Is(err, review.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.CreateSet(ctx, 700, "fruit", nil); !errors.Is(err, review.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty terms, got %v", err)
	}
}

func TestFindByName(t *testing.T) {
	testutil.SetupTestDB(t)
	svc := NewService(db.DB)
	ctx := context.Background()

	createWord(t, 700, "apple")
	created, err := svc.CreateSet(ctx, 700, "fruit", []string{"apple"})
	if err != nil {
		t.Fatalf("CreateSet returned error: %v", err)
	}

	set, err := svc.FindByName(ctx, 700, " fruit ")
	if err != nil {
		t.Fatalf("FindByName returned error: %v", err)
	}
	if set.ID != created.ID {
		t.Fatalf("expected set %d, got %d", created.ID, set.ID)
	}

	if _, err := svc.FindByName(ctx, 700, "veggies"); !errors.Is(err, review.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveWordIDsErrors(t *testing.T) {
	testutil.SetupTestDB(t)
	svc := NewService(db.DB)
	ctx := context.Background()

	if _, err := svc.ResolveWordIDs(ctx, 700, 42); !errors.Is(err, review.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing set, got %v", err)
	}

	createWord(t, 900, "apple")
	foreign, err := svc.CreateSet(ctx, 900, "fruit", []string{"apple"})
	if err != nil {
		t.Fatalf("CreateSet returned error: %v", err)
	}
	if _, err := svc.ResolveWordIDs(ctx, 700, foreign.ID); !errors.Is(err, review.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another user's set, got %v", err)
	}
}

func TestStorageFailuresWrapPersistenceError(t *testing.T) {
	testutil.SetupTestDB(t)
	svc := NewService(db.DB)
	ctx := context.Background()

	createWord(t, 700, "apple")
	set, err := svc.CreateSet(ctx, 700, "fruit", []string{"apple"})
	if err != nil {
		t.Fatalf("CreateSet returned error: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	var perr *review.PersistenceError
	if _, err := svc.FindByName(ctx, 700, "fruit"); !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError from FindByName, got %v", err)
	}
	if _, err := svc.ResolveWordIDs(ctx, 700, set.ID); !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError from ResolveWordIDs, got %v", err)
	}
	if _, err := svc.CreateSet(ctx, 700, "veggies", []string{"apple"}); !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError from CreateSet, got %v", err)
	}
}
