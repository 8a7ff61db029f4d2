// Package onboarding backfills review progress for users whose words
// predate progress tracking.
package onboarding

import (
	"context"

	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

// EnsureProgressInitialized creates missing stage-0 progress rows for
// every word the user owns. It returns how many rows were created and
// is safe to call on every /start.
func EnsureProgressInitialized(ctx context.Context, userID int64, reviewer *review.Scheduler) (int64, error) {
	var wordIDs []uint
	if err := db.DB.WithContext(ctx).
		Model(&db.Word{}).
		Where("user_id = ?", userID).
		Pluck("id", &wordIDs).Error; err != nil {
		return 0, err
	}
	if len(wordIDs) == 0 {
		return 0, nil
	}
	return reviewer.InitializeProgress(ctx, userID, wordIDs)
}
