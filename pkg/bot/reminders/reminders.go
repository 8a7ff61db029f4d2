// Package reminders sends periodic "words are due" nudges over
// Telegram, honoring each user's preferred hour and pause flag.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
	"github.com/vocab-tools/tg-vocab-review/pkg/statscache"
)

const runTimeout = time.Minute

// Sender delivers one reminder message. The Telegram bot satisfies it
// in production.
type Sender interface {
	SendReminder(ctx context.Context, userID int64, text string) error
}

type Service struct {
	sender    Sender
	reviewer  *review.Scheduler
	cache     *statscache.Cache
	scheduler *gocron.Scheduler
	now       func() time.Time
}

// New builds the reminder service. cache may be nil; a nil now defaults
// to time.Now.
func New(sender Sender, reviewer *review.Scheduler, cache *statscache.Cache, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		sender:   sender,
		reviewer: reviewer,
		cache:    cache,
		now:      now,
	}
}

// Start schedules an hourly pass over all users. Each user is reminded
// only during the hour they configured.
func (s *Service) Start() error {
	s.scheduler = gocron.NewScheduler(time.UTC)
	if _, err := s.scheduler.Every(1).Hour().Do(s.run); err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}
	s.scheduler.StartAsync()
	logger.Info("reminder scheduler started")
	return nil
}

func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Service) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	hour := s.now().UTC().Hour()
	var users []db.UserSettings
	if err := db.DB.WithContext(ctx).Find(&users).Error; err != nil {
		logger.Error("failed to load user settings for reminders", "error", err)
		return
	}

	for _, user := range users {
		if !shouldRemind(user, hour) {
			continue
		}
		stats, err := s.userStats(ctx, user.UserID)
		if err != nil {
			logger.Error("failed to load stats for reminder", "user_id", user.UserID, "error", err)
			continue
		}
		if stats.DueNow == 0 {
			continue
		}
		text := fmt.Sprintf("⏰ You have %d words due for review. Send /review when you are ready.", stats.DueNow)
		if err := s.sender.SendReminder(ctx, user.UserID, text); err != nil {
			logger.Error("failed to send reminder", "user_id", user.UserID, "error", err)
		}
	}
}

func (s *Service) userStats(ctx context.Context, userID int64) (*review.Stats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(userID, review.UserScope); ok {
			return stats, nil
		}
	}
	stats, err := s.reviewer.GetProgressStats(ctx, userID, review.UserScope)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Put(userID, review.UserScope, stats)
	}
	return stats, nil
}

func shouldRemind(settings db.UserSettings, hourUTC int) bool {
	return !settings.RemindersPaused && settings.ReminderHourUTC == hourUTC
}
