// Package review owns the spaced-repetition progression for (user,
// word) pairs: how the review stage moves on recall outcomes and how
// due words are selected across a user's vocabulary or one word set.
package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
)

// DefaultDueLimit caps SelectDue when the caller does not ask for a
// specific limit.
const DefaultDueLimit = 50

// staleRetryLimit bounds how often RecordOutcome re-reads after losing
// a compare-and-set race to a concurrent writer on the same pair.
const staleRetryLimit = 3

// Result reports the state of a pair after RecordOutcome. The next
// review date carries day granularity only.
type Result struct {
	Stage          int
	NextReviewDate time.Time
}

// Stats aggregates a user's progress, optionally narrowed to one set.
type Stats struct {
	Total         int64
	DueNow        int64
	Learned       int64 // rows with stage > 0
	ByStage       map[int]int64
	CompletionPct int
}

type Scheduler struct {
	store   ProgressStore
	scopes  ScopeResolver
	cache   CacheInvalidator
	metrics MetricsRecorder
	now     func() time.Time
}

// NewScheduler wires the scheduler to its collaborators. cache and
// metrics may be nil; a nil now defaults to time.Now.
func NewScheduler(store ProgressStore, scopes ScopeResolver, cache CacheInvalidator, metrics MetricsRecorder, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		store:   store,
		scopes:  scopes,
		cache:   cache,
		metrics: metrics,
		now:     now,
	}
}

// RecordOutcome applies one recall outcome to a pair. A pair without a
// progress row is created at stage 0 first, then the transition runs
// from that baseline. The read-modify-write happens in one store
// transaction with a stage compare-and-set, so a racing writer on the
// same pair forces a re-read instead of a lost update. Duplicate
// submissions are not deduplicated here.
func (s *Scheduler) RecordOutcome(ctx context.Context, userID int64, wordID uint, correct bool) (*Result, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id %d", ErrInvalidInput, userID)
	}
	if wordID == 0 {
		return nil, fmt.Errorf("%w: word id 0", ErrInvalidInput)
	}

	now := s.now().UTC()
	var result Result
	var err error
	for attempt := 0; attempt <= staleRetryLimit; attempt++ {
		err = s.store.Transact(ctx, func(tx ProgressStore) error {
			progress, err := tx.Find(ctx, userID, wordID)
			if err != nil {
				return err
			}
			if progress == nil {
				progress, err = tx.Create(ctx, userID, wordID, 0, Today(now))
				if err != nil {
					return err
				}
			}

			stage := 0
			if correct {
				stage = Advance(progress.ReviewStage)
			}
			due := NextDue(stage, now)
			if err := tx.Update(ctx, userID, wordID, progress.ReviewStage, stage, due, now); err != nil {
				return err
			}
			result = Result{Stage: stage, NextReviewDate: due}
			return nil
		})
		if !errors.Is(err, ErrStaleProgress) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordOutcome(correct)
	}
	s.invalidate(userID)
	return &result, nil
}

// SelectDue returns up to limit words eligible for review, most overdue
// first. With newOnly, never-reviewed words (stage 0) are preferred,
// ordered oldest-assigned first and regardless of due date; only when
// there are none does the general due query run. setID UserScope means
// the whole vocabulary.
func (s *Scheduler) SelectDue(ctx context.Context, userID int64, setID uint, limit int, newOnly bool) ([]db.ReviewProgress, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id %d", ErrInvalidInput, userID)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrInvalidInput, limit)
	}
	if limit == 0 {
		limit = DefaultDueLimit
	}

	filter, empty, err := s.resolveScope(ctx, userID, setID)
	if err != nil {
		return nil, err
	}
	if empty {
		return []db.ReviewProgress{}, nil
	}

	now := s.now().UTC()
	if newOnly {
		rows, err := s.store.QueryByStage(ctx, userID, 0, filter, limit)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			s.recordDueQuery()
			return rows, nil
		}
	}
	rows, err := s.store.QueryDue(ctx, userID, filter, Today(now), limit)
	if err != nil {
		return nil, err
	}
	s.recordDueQuery()
	return rows, nil
}

// recordDueQuery counts only selections that were actually served.
func (s *Scheduler) recordDueQuery() {
	if s.metrics != nil {
		s.metrics.RecordDueQuery()
	}
}

// GetProgressStats reports totals, due-now count, per-stage histogram
// and an integer completion percentage (0 when nothing is tracked).
func (s *Scheduler) GetProgressStats(ctx context.Context, userID int64, setID uint) (*Stats, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id %d", ErrInvalidInput, userID)
	}

	filter, empty, err := s.resolveScope(ctx, userID, setID)
	if err != nil {
		return nil, err
	}
	if empty {
		return &Stats{ByStage: map[int]int64{}}, nil
	}

	total, err := s.store.CountTracked(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	byStage, err := s.store.GroupCountByStage(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	dueNow, err := s.store.CountDue(ctx, userID, filter, Today(s.now().UTC()))
	if err != nil {
		return nil, err
	}

	learned := total - byStage[0]
	stats := &Stats{
		Total:   total,
		DueNow:  dueNow,
		Learned: learned,
		ByStage: byStage,
	}
	if total > 0 {
		stats.CompletionPct = int(math.Round(float64(learned) / float64(total) * 100))
	}
	return stats, nil
}

// InitializeProgress creates stage-0, due-today rows for every word the
// user owns in wordIDs that has no row yet. Idempotent: already
// initialized pairs are skipped untouched.
func (s *Scheduler) InitializeProgress(ctx context.Context, userID int64, wordIDs []uint) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("%w: user id %d", ErrInvalidInput, userID)
	}
	for _, wordID := range wordIDs {
		if wordID == 0 {
			return 0, fmt.Errorf("%w: word id 0", ErrInvalidInput)
		}
	}
	if len(wordIDs) == 0 {
		return 0, nil
	}

	created, err := s.store.BulkCreateIfAbsent(ctx, userID, wordIDs, Today(s.now().UTC()))
	if err != nil {
		return 0, err
	}
	if created > 0 {
		if s.metrics != nil {
			s.metrics.RecordInitialized(created)
		}
		s.invalidate(userID)
	}
	return created, nil
}

// resolveScope maps a set id to a word id filter. The empty flag marks
// a set that exists but contains no words, which short-circuits to an
// empty result instead of querying unfiltered.
func (s *Scheduler) resolveScope(ctx context.Context, userID int64, setID uint) ([]uint, bool, error) {
	if setID == UserScope {
		return nil, false, nil
	}
	if s.scopes == nil {
		return nil, false, fmt.Errorf("%w: word set %d", ErrNotFound, setID)
	}
	ids, err := s.scopes.ResolveWordIDs(ctx, userID, setID)
	if err != nil {
		return nil, false, err
	}
	if len(ids) == 0 {
		return nil, true, nil
	}
	return ids, false, nil
}

func (s *Scheduler) invalidate(userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(userID, UserScope); err != nil {
		// Best effort only. A stale stats cache must never fail the
		// review itself.
		logger.Error("failed to invalidate stats cache", "user_id", userID, "error", err)
		if s.metrics != nil {
			s.metrics.RecordCacheInvalidationFailure()
		}
	}
}
