package db

import (
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func TestParseGormLogLevel(t *testing.T) {
	cases := []struct {
		value   string
		want    gormlogger.LogLevel
		wantErr bool
	}{
		{value: "silent", want: gormlogger.Silent},
		{value: " Error ", want: gormlogger.Error},
		{value: "warn", want: gormlogger.Warn},
		{value: "INFO", want: gormlogger.Info},
		{value: "trace", want: defaultGormLogLevel, wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseGormLogLevel(tc.value)
		if tc.wantErr && err == nil {
			t.Errorf("parseGormLogLevel(%q): expected error", tc.value)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("parseGormLogLevel(%q): unexpected error %v", tc.value, err)
		}
		if got != tc.want {
			t.Errorf("parseGormLogLevel(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestNewGormLoggerDefaultsOnEmpty(t *testing.T) {
	l, err := newGormLogger("")
	if err != nil {
		t.Fatalf("newGormLogger returned error: %v", err)
	}
	adapter, ok := l.(*gormSlogLogger)
	if !ok {
		t.Fatalf("unexpected logger type %T", l)
	}
	if adapter.logLevel != defaultGormLogLevel {
		t.Errorf("expected default level %v, got %v", defaultGormLogLevel, adapter.logLevel)
	}
	if !adapter.ignoreRecordNotFoundError {
		t.Error("expected record-not-found errors to be ignored")
	}
}

func TestNewGormLoggerInvalidLevelStillReturnsLogger(t *testing.T) {
	l, err := newGormLogger("bogus")
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	if l == nil {
		t.Fatal("expected a usable logger even on invalid level")
	}
}
