package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
)

func HandleAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleAdd")
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	term, translation, ok := parseAddCommand(update.Message.Text)
	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /add word - translation",
		})
		return
	}

	word := db.Word{UserID: userID, Term: term, Translation: translation}
	if err := db.DB.WithContext(ctx).Create(&word).Error; err != nil {
		logger.Error("failed to create word", "user_id", userID, "term", term, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("Could not add %q. Maybe you already have it?", term),
		})
		return
	}

	if _, err := Reviewer.InitializeProgress(ctx, userID, []uint{word.ID}); err != nil {
		logger.Error("failed to initialize progress for new word", "user_id", userID, "word_id", word.ID, "error", err)
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("Added %s — %s. It is ready for /review.", word.Term, word.Translation),
	}); err != nil {
		logger.Error("failed to send add confirmation", "user_id", userID, "error", err)
	}
}
