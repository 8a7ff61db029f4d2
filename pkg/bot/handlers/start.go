package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vocab-tools/tg-vocab-review/pkg/bot/onboarding"
	"github.com/vocab-tools/tg-vocab-review/pkg/config"
	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
)

const helpText = `Hi! I help you memorize vocabulary with spaced repetition.

/add word - translation — add a word to your vocabulary
/newset name: word1, word2 — group words into a named set
/review [set] — review the words that are due today
/learn [set] — study words you have never reviewed
/stats [set] — see how far you have come`

func HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleStart")
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	settings := db.UserSettings{
		UserID:          userID,
		WordsPerSession: config.AppConfig.Review.SessionSize,
		ReminderHourUTC: config.AppConfig.Review.ReminderHourUTC,
	}
	if err := db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&settings).Error; err != nil {
		logger.Error("failed to ensure user settings", "user_id", userID, "error", err)
	}

	if created, err := onboarding.EnsureProgressInitialized(ctx, userID, Reviewer); err != nil {
		logger.Error("failed to backfill review progress", "user_id", userID, "error", err)
	} else if created > 0 {
		logger.Info("backfilled review progress", "user_id", userID, "created", created)
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   helpText,
	}); err != nil {
		logger.Error("failed to send start message", "user_id", userID, "error", err)
	}
}
