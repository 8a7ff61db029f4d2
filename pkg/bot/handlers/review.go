package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vocab-tools/tg-vocab-review/pkg/config"
	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

func HandleReview(ctx context.Context, b *bot.Bot, update *models.Update) {
	sendReviewSession(ctx, b, update, "/review", false)
}

func sendReviewSession(ctx context.Context, b *bot.Bot, update *models.Update, command string, newOnly bool) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in sendReviewSession", "command", command)
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	setID, ok := resolveScopeArg(ctx, b, chatID, userID, update.Message.Text, command)
	if !ok {
		return
	}

	size := config.AppConfig.Review.SessionSize
	var settings db.UserSettings
	if err := db.DB.Where("user_id = ?", userID).First(&settings).Error; err == nil && settings.WordsPerSession > 0 {
		size = settings.WordsPerSession
	}

	rows, err := Reviewer.SelectDue(ctx, userID, setID, size, newOnly)
	if err != nil {
		logger.Error("failed to select due words", "user_id", userID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Failed to start the session. Please try again later.",
		})
		return
	}
	if len(rows) == 0 {
		text := "Nothing to review right now. Come back later!"
		if newOnly {
			text = "No words waiting to be learned. Add some with /add first."
		}
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
		return
	}

	for _, row := range rows {
		var word db.Word
		if err := db.DB.First(&word, row.WordID).Error; err != nil {
			logger.Error("failed to load word for review", "word_id", row.WordID, "error", err)
			continue
		}
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        fmt.Sprintf("Do you remember: %s", word.Term),
			ReplyMarkup: reviewKeyboard(word.ID),
		})
		if err != nil {
			logger.Error("failed to send review prompt", "user_id", userID, "error", err)
			return
		}
	}
}

func reviewKeyboard(wordID uint) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{Text: "✅ Knew it", CallbackData: BuildReviewCallback(wordID, true)},
			{Text: "❌ Forgot", CallbackData: BuildReviewCallback(wordID, false)},
		}},
	}
}

func HandleReviewCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleReviewCallback")
		return
	}

	callbackID := update.CallbackQuery.ID
	answerCallback := func(text string) {
		if callbackID == "" {
			return
		}
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		}); err != nil {
			logger.Error("failed to answer review callback query", "error", err)
		}
	}

	wordID, correct, ok := ParseReviewCallback(update.CallbackQuery.Data)
	if !ok {
		answerCallback("Not active")
		return
	}

	message := update.CallbackQuery.Message
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil {
		answerCallback("Message missing")
		return
	}
	msg := message.Message
	if msg.Chat.ID == 0 {
		answerCallback("Message missing")
		return
	}

	userID := update.CallbackQuery.From.ID
	result, err := Reviewer.RecordOutcome(ctx, userID, wordID, correct)
	if err != nil {
		logger.Error("failed to record review outcome", "user_id", userID, "word_id", wordID, "error", err)
		switch {
		case errors.Is(err, review.ErrNotFound):
			answerCallback("This word no longer exists")
		case errors.Is(err, review.ErrInvalidInput):
			answerCallback("Not active")
		default:
			answerCallback("Failed to save the review")
		}
		return
	}

	var word db.Word
	if err := db.DB.First(&word, wordID).Error; err != nil {
		logger.Error("failed to load reviewed word", "word_id", wordID, "error", err)
	}

	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      formatReviewResolvedText(word, correct, result),
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{},
		},
	}); err != nil {
		logger.Error("failed to edit review prompt", "user_id", userID, "error", err)
	}
	answerCallback("Saved")
}

func formatReviewResolvedText(word db.Word, correct bool, result *review.Result) string {
	mark := "✅"
	if !correct {
		mark = "❌"
	}
	next := "today"
	if result.Stage > 0 {
		next = result.NextReviewDate.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s %s — %s\nStage %d, next review %s", mark, word.Term, word.Translation, result.Stage, next)
}

// resolveScopeArg maps an optional set name argument to a set id.
// Returns ok=false after replying to the user when the set is unknown.
func resolveScopeArg(ctx context.Context, b *bot.Bot, chatID, userID int64, text, command string) (uint, bool) {
	scopeName := parseScopeArg(text, command)
	if scopeName == "" {
		return review.UserScope, true
	}
	set, err := Sets.FindByName(ctx, userID, scopeName)
	if err != nil {
		if !errors.Is(err, review.ErrNotFound) {
			logger.Error("failed to resolve word set", "user_id", userID, "set", scopeName, "error", err)
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("I don't know a set named %q. Create it with /newset.", scopeName),
		})
		return review.UserScope, false
	}
	return set.ID, true
}
