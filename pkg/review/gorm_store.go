package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProgressStore implements ProgressStore on the review_progress
// table.
type GormProgressStore struct {
	gdb *gorm.DB
}

var _ ProgressStore = (*GormProgressStore)(nil)

func NewGormProgressStore(gdb *gorm.DB) *GormProgressStore {
	return &GormProgressStore{gdb: gdb}
}

func (s *GormProgressStore) Find(ctx context.Context, userID int64, wordID uint) (*db.ReviewProgress, error) {
	var progress db.ReviewProgress
	err := s.gdb.WithContext(ctx).
		Where("user_id = ? AND word_id = ?", userID, wordID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceErr("find progress", err)
	}
	return &progress, nil
}

func (s *GormProgressStore) Create(ctx context.Context, userID int64, wordID uint, stage int, nextReview time.Time) (*db.ReviewProgress, error) {
	var count int64
	if err := s.gdb.WithContext(ctx).Model(&db.Word{}).
		Where("id = ? AND user_id = ?", wordID, userID).
		Count(&count).Error; err != nil {
		return nil, persistenceErr("check word", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: word %d", ErrNotFound, wordID)
	}

	progress := &db.ReviewProgress{
		UserID:         userID,
		WordID:         wordID,
		ReviewStage:    stage,
		NextReviewDate: datatypes.Date(nextReview),
	}
	if err := s.gdb.WithContext(ctx).Create(progress).Error; err != nil {
		return nil, persistenceErr("create progress", err)
	}
	return progress, nil
}

func (s *GormProgressStore) Update(ctx context.Context, userID int64, wordID uint, fromStage, stage int, nextReview time.Time, reviewedAt time.Time) error {
	// The stage guard makes this a compare-and-set. Under READ COMMITTED
	// a plain UPDATE would let two writers both apply a stage computed
	// from the same read; the guard turns the loser into RowsAffected 0.
	res := s.gdb.WithContext(ctx).Model(&db.ReviewProgress{}).
		Where("user_id = ? AND word_id = ? AND review_stage = ?", userID, wordID, fromStage).
		Updates(map[string]interface{}{
			"review_stage":     stage,
			"next_review_date": datatypes.Date(nextReview),
			"last_reviewed_at": reviewedAt,
		})
	if res.Error != nil {
		return persistenceErr("update progress", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.gdb.WithContext(ctx).Model(&db.ReviewProgress{}).
			Where("user_id = ? AND word_id = ?", userID, wordID).
			Count(&count).Error; err != nil {
			return persistenceErr("update progress", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: progress for word %d", ErrNotFound, wordID)
		}
		return fmt.Errorf("%w: progress for word %d", ErrStaleProgress, wordID)
	}
	return nil
}

func (s *GormProgressStore) QueryDue(ctx context.Context, userID int64, wordIDs []uint, dueOn time.Time, limit int) ([]db.ReviewProgress, error) {
	query := s.gdb.WithContext(ctx).
		Where("user_id = ? AND next_review_date <= ?", userID, datatypes.Date(dueOn))
	if len(wordIDs) > 0 {
		query = query.Where("word_id IN ?", wordIDs)
	}
	var rows []db.ReviewProgress
	if err := query.
		Order("next_review_date ASC, id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, persistenceErr("query due", err)
	}
	return rows, nil
}

func (s *GormProgressStore) QueryByStage(ctx context.Context, userID int64, stage int, wordIDs []uint, limit int) ([]db.ReviewProgress, error) {
	query := s.gdb.WithContext(ctx).
		Where("user_id = ? AND review_stage = ?", userID, stage)
	if len(wordIDs) > 0 {
		query = query.Where("word_id IN ?", wordIDs)
	}
	var rows []db.ReviewProgress
	if err := query.
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, persistenceErr("query by stage", err)
	}
	return rows, nil
}

func (s *GormProgressStore) CountTracked(ctx context.Context, userID int64, wordIDs []uint) (int64, error) {
	query := s.gdb.WithContext(ctx).Model(&db.ReviewProgress{}).
		Where("user_id = ?", userID)
	if len(wordIDs) > 0 {
		query = query.Where("word_id IN ?", wordIDs)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, persistenceErr("count tracked", err)
	}
	return count, nil
}

func (s *GormProgressStore) CountDue(ctx context.Context, userID int64, wordIDs []uint, dueOn time.Time) (int64, error) {
	query := s.gdb.WithContext(ctx).Model(&db.ReviewProgress{}).
		Where("user_id = ? AND next_review_date <= ?", userID, datatypes.Date(dueOn))
	if len(wordIDs) > 0 {
		query = query.Where("word_id IN ?", wordIDs)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, persistenceErr("count due", err)
	}
	return count, nil
}

func (s *GormProgressStore) GroupCountByStage(ctx context.Context, userID int64, wordIDs []uint) (map[int]int64, error) {
	query := s.gdb.WithContext(ctx).Model(&db.ReviewProgress{}).
		Select("review_stage, COUNT(*) AS count").
		Where("user_id = ?", userID)
	if len(wordIDs) > 0 {
		query = query.Where("word_id IN ?", wordIDs)
	}
	var rows []struct {
		ReviewStage int
		Count       int64
	}
	if err := query.Group("review_stage").Scan(&rows).Error; err != nil {
		return nil, persistenceErr("group count by stage", err)
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.ReviewStage] = row.Count
	}
	return counts, nil
}

func (s *GormProgressStore) BulkCreateIfAbsent(ctx context.Context, userID int64, wordIDs []uint, nextReview time.Time) (int64, error) {
	if len(wordIDs) == 0 {
		return 0, nil
	}

	// Only words the user actually owns get a progress row; unknown ids
	// are skipped rather than failing the whole batch.
	var ownedIDs []uint
	if err := s.gdb.WithContext(ctx).Model(&db.Word{}).
		Where("user_id = ? AND id IN ?", userID, wordIDs).
		Order("id ASC").
		Pluck("id", &ownedIDs).Error; err != nil {
		return 0, persistenceErr("resolve owned words", err)
	}
	if len(ownedIDs) == 0 {
		return 0, nil
	}

	rows := make([]db.ReviewProgress, 0, len(ownedIDs))
	for _, wordID := range ownedIDs {
		rows = append(rows, db.ReviewProgress{
			UserID:         userID,
			WordID:         wordID,
			ReviewStage:    0,
			NextReviewDate: datatypes.Date(nextReview),
		})
	}

	res := s.gdb.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return 0, persistenceErr("bulk create progress", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormProgressStore) Transact(ctx context.Context, fn func(ProgressStore) error) error {
	return s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormProgressStore{gdb: tx})
	})
}
