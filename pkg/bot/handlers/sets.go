package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

func HandleNewSet(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleNewSet")
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	name, terms, ok := parseNewSetCommand(update.Message.Text)
	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /newset name: word1, word2, word3",
		})
		return
	}

	set, err := Sets.CreateSet(ctx, userID, name, terms)
	if err != nil {
		logger.Error("failed to create word set", "user_id", userID, "set", name, "error", err)
		text := fmt.Sprintf("Could not create set %q.", name)
		if errors.Is(err, review.ErrNotFound) {
			text = "Some of those words are not in your vocabulary yet. Add them with /add first."
		}
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("Set %q created with %d words. Try /review %s.", set.Name, len(terms), set.Name),
	}); err != nil {
		logger.Error("failed to send set confirmation", "user_id", userID, "error", err)
	}
}
