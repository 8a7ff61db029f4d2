package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

func HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleStats")
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	setID, ok := resolveScopeArg(ctx, b, chatID, userID, update.Message.Text, "/stats")
	if !ok {
		return
	}

	stats, ok := StatsCache.Get(userID, setID)
	if !ok {
		var err error
		stats, err = Reviewer.GetProgressStats(ctx, userID, setID)
		if err != nil {
			logger.Error("failed to compute progress stats", "user_id", userID, "set_id", setID, "error", err)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "Failed to load your stats. Please try again later.",
			})
			return
		}
		StatsCache.Put(userID, setID, stats)
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   formatStats(stats),
	}); err != nil {
		logger.Error("failed to send stats", "user_id", userID, "error", err)
	}
}

func formatStats(stats *review.Stats) string {
	if stats.Total == 0 {
		return "No words tracked yet. Add some with /add to get started."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Your progress\n")
	fmt.Fprintf(&sb, "Words tracked: %d\n", stats.Total)
	fmt.Fprintf(&sb, "Learned: %d (%d%%)\n", stats.Learned, stats.CompletionPct)
	fmt.Fprintf(&sb, "Due now: %d\n", stats.DueNow)
	for stage := 0; stage <= review.MaxStage; stage++ {
		if count := stats.ByStage[stage]; count > 0 {
			fmt.Fprintf(&sb, "  stage %d: %d\n", stage, count)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
