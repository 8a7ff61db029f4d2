package review

import (
	"context"
	"time"

	"github.com/vocab-tools/tg-vocab-review/pkg/db"
)

// UserScope is the sentinel set id meaning "all of the user's words".
const UserScope uint = 0

// ProgressStore is the persistence collaborator. Implementations must
// provide row-level atomicity for single-record updates and must treat
// duplicate keys in BulkCreateIfAbsent as already-initialized, not as
// errors.
type ProgressStore interface {
	// Find returns (nil, nil) when no progress row exists for the pair.
	Find(ctx context.Context, userID int64, wordID uint) (*db.ReviewProgress, error)
	// Create inserts a fresh row. It fails with ErrNotFound when the
	// word does not exist or is not owned by the user.
	Create(ctx context.Context, userID int64, wordID uint, stage int, nextReview time.Time) (*db.ReviewProgress, error)
	// Update is a compare-and-set on the stage column: the write applies
	// only while the row still holds fromStage, so two racing advances
	// computed from the same read cannot both win. Returns
	// ErrStaleProgress on a lost race and ErrNotFound when no row exists.
	Update(ctx context.Context, userID int64, wordID uint, fromStage, stage int, nextReview time.Time, reviewedAt time.Time) error
	// QueryDue returns rows with next_review_date <= dueOn, most
	// overdue first, ties broken by id.
	QueryDue(ctx context.Context, userID int64, wordIDs []uint, dueOn time.Time, limit int) ([]db.ReviewProgress, error)
	// QueryByStage returns rows at the given stage ordered by creation
	// time ascending, regardless of due date.
	QueryByStage(ctx context.Context, userID int64, stage int, wordIDs []uint, limit int) ([]db.ReviewProgress, error)
	CountTracked(ctx context.Context, userID int64, wordIDs []uint) (int64, error)
	CountDue(ctx context.Context, userID int64, wordIDs []uint, dueOn time.Time) (int64, error)
	GroupCountByStage(ctx context.Context, userID int64, wordIDs []uint) (map[int]int64, error)
	// BulkCreateIfAbsent creates stage-0 rows for the words the user
	// owns, skipping pairs that already exist. Returns the created count.
	BulkCreateIfAbsent(ctx context.Context, userID int64, wordIDs []uint, nextReview time.Time) (int64, error)
	// Transact runs fn against a store bound to one transaction.
	Transact(ctx context.Context, fn func(ProgressStore) error) error
}

// ScopeResolver turns a word set id into the word ids it contains,
// failing with ErrNotFound or ErrForbidden.
type ScopeResolver interface {
	ResolveWordIDs(ctx context.Context, userID int64, setID uint) ([]uint, error)
}

// CacheInvalidator is notified after progress mutations. setID
// UserScope means every cached view of the user is stale. Failures are
// logged and swallowed by the scheduler.
type CacheInvalidator interface {
	Invalidate(userID int64, setID uint) error
}

// MetricsRecorder receives counters from the scheduler. All methods
// must be safe for concurrent use.
type MetricsRecorder interface {
	RecordOutcome(correct bool)
	RecordDueQuery()
	RecordInitialized(count int64)
	RecordCacheInvalidationFailure()
}
