package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleLearn runs a session over never-reviewed words first, falling
// back to the regular due queue when there are none.
func HandleLearn(ctx context.Context, b *bot.Bot, update *models.Update) {
	sendReviewSession(ctx, b, update, "/learn", true)
}
