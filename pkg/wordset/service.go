// Package wordset manages named word collections and resolves them
// into word id scopes for the review scheduler.
package wordset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	gdb *gorm.DB
}

var _ review.ScopeResolver = (*Service)(nil)

func NewService(gdb *gorm.DB) *Service {
	return &Service{gdb: gdb}
}

// CreateSet builds a named set from terms the user already owns. Every
// term must resolve to an existing word.
func (s *Service) CreateSet(ctx context.Context, userID int64, name string, terms []string) (*db.WordSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty set name", review.ErrInvalidInput)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: empty term list", review.ErrInvalidInput)
	}

	var words []db.Word
	if err := s.gdb.WithContext(ctx).
		Where("user_id = ? AND term IN ?", userID, terms).
		Find(&words).Error; err != nil {
		return nil, &review.PersistenceError{Op: "resolve set terms", Err: err}
	}

	found := make(map[string]uint, len(words))
	for _, word := range words {
		found[word.Term] = word.ID
	}
	wordIDs := make([]uint, 0, len(terms))
	for _, term := range terms {
		id, ok := found[strings.TrimSpace(term)]
		if !ok {
			return nil, fmt.Errorf("%w: word %q", review.ErrNotFound, term)
		}
		wordIDs = append(wordIDs, id)
	}

	payload, err := json.Marshal(wordIDs)
	if err != nil {
		return nil, err
	}
	set := &db.WordSet{
		UserID:  userID,
		Name:    name,
		WordIDs: datatypes.JSON(payload),
	}
	if err := s.gdb.WithContext(ctx).Create(set).Error; err != nil {
		return nil, &review.PersistenceError{Op: "create word set", Err: err}
	}
	return set, nil
}

// FindByName looks a set up by its user-scoped name.
func (s *Service) FindByName(ctx context.Context, userID int64, name string) (*db.WordSet, error) {
	var set db.WordSet
	err := s.gdb.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, strings.TrimSpace(name)).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: word set %q", review.ErrNotFound, name)
	}
	if err != nil {
		return nil, &review.PersistenceError{Op: "find word set", Err: err}
	}
	return &set, nil
}

// ResolveWordIDs implements review.ScopeResolver. A set belonging to a
// different user is ErrForbidden, never silently empty.
func (s *Service) ResolveWordIDs(ctx context.Context, userID int64, setID uint) ([]uint, error) {
	var set db.WordSet
	err := s.gdb.WithContext(ctx).First(&set, setID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: word set %d", review.ErrNotFound, setID)
	}
	if err != nil {
		return nil, &review.PersistenceError{Op: "load word set", Err: err}
	}
	if set.UserID != userID {
		return nil, fmt.Errorf("%w: word set %d", review.ErrForbidden, setID)
	}

	var wordIDs []uint
	if err := json.Unmarshal(set.WordIDs, &wordIDs); err != nil {
		return nil, fmt.Errorf("corrupt word set %d: %w", setID, err)
	}
	return wordIDs, nil
}
