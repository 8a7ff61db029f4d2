package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vocab-tools/tg-vocab-review/pkg/bot/handlers"
	"github.com/vocab-tools/tg-vocab-review/pkg/bot/reminders"
	"github.com/vocab-tools/tg-vocab-review/pkg/config"
	"github.com/vocab-tools/tg-vocab-review/pkg/db"
	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
	"github.com/vocab-tools/tg-vocab-review/pkg/metrics"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
	"github.com/vocab-tools/tg-vocab-review/pkg/statscache"
	"github.com/vocab-tools/tg-vocab-review/pkg/wordset"
)

type botSender struct {
	b *bot.Bot
}

func (s botSender) SendReminder(ctx context.Context, userID int64, text string) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: userID,
		Text:   text,
	})
	return err
}

func main() {
	if err := config.LoadConfig("config.json"); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level: config.AppConfig.Logging.Level,
		File:  config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	cache := statscache.New(statscache.DefaultTTL, nil)
	sets := wordset.NewService(db.DB)
	reviewer := review.NewScheduler(review.NewGormProgressStore(db.DB), sets, cache, collector, nil)
	handlers.Configure(reviewer, sets, cache)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := []bot.Option{
		bot.WithDefaultHandler(handlers.DefaultHandler),
	}
	b, err := bot.New(config.AppConfig.Telegram.Token, opts...)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, handlers.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/add", bot.MatchTypePrefix, handlers.HandleAdd)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/newset", bot.MatchTypePrefix, handlers.HandleNewSet)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/review", bot.MatchTypePrefix, handlers.HandleReview)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/learn", bot.MatchTypePrefix, handlers.HandleLearn)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, handlers.HandleStats)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, handlers.ReviewCallbackPrefix, bot.MatchTypePrefix, handlers.HandleReviewCallback)

	reminderSvc := reminders.New(botSender{b: b}, reviewer, cache, nil)
	if err := reminderSvc.Start(); err != nil {
		logger.Error("failed to start reminders", "error", err)
		os.Exit(1)
	}
	defer reminderSvc.Stop()

	if addr := config.AppConfig.Metrics.Addr; addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("metrics endpoint listening", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	logger.Info("Starting bot...")
	b.Start(ctx)
}
