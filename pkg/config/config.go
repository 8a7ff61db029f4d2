package config

import (
	"encoding/json"
	"os"

	"github.com/vocab-tools/tg-vocab-review/pkg/logger"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
	Review   ReviewConfig   `json:"review"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Port     int    `json:"port"`
	SSLMode  string `json:"sslmode"`
}

type TelegramConfig struct {
	Token string `json:"token"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

type MetricsConfig struct {
	Addr string `json:"addr"` // empty disables the /metrics endpoint
}

type ReviewConfig struct {
	SessionSize     int `json:"session_size"`      // words per /review session
	ReminderHourUTC int `json:"reminder_hour_utc"` // default hour for due-word reminders
}

var AppConfig Config

func LoadConfig(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		logger.Error("failed to open config file", "error", err)
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}

	if AppConfig.Review.SessionSize <= 0 {
		AppConfig.Review.SessionSize = 10
	}
	if AppConfig.Review.ReminderHourUTC < 0 || AppConfig.Review.ReminderHourUTC > 23 {
		AppConfig.Review.ReminderHourUTC = 8
	}

	return nil
}
