package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Normalize.MaxPostLength != 300 {
		t.Fatalf("expected default post length 300, got %d", cfg.Normalize.MaxPostLength)
	}
	if cfg.Normalize.SummaryLength != 280 {
		t.Fatalf("expected default summary length 280, got %d", cfg.Normalize.SummaryLength)
	}
}

func TestValidateRejectsBadBudgets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Normalize.MaxPostLength = 0
	if err := cfg.Validate(); !errors.Is(err, ErrPostLengthInvalid) {
		t.Fatalf("expected ErrPostLengthInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Normalize.SummaryLength = -1
	if err := cfg.Validate(); !errors.Is(err, ErrSummaryLengthInvalid) {
		t.Fatalf("expected ErrSummaryLengthInvalid, got %v", err)
	}
}

func TestValidateHistoryRequiresDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.History = true
	cfg.History.DatabasePath = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrHistoryDatabaseRequired) {
		t.Fatalf("expected ErrHistoryDatabaseRequired, got %v", err)
	}

	cfg.History.DatabasePath = "data/postkit.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid history config, got %v", err)
	}

	cfg.History.CacheTTL = -time.Second
	if err := cfg.Validate(); !errors.Is(err, ErrHistoryCacheTTLInvalid) {
		t.Fatalf("expected ErrHistoryCacheTTLInvalid, got %v", err)
	}
}

func TestValidateMarkdownEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Markdown.Engine = "asciidoc"
	if err := cfg.Validate(); !errors.Is(err, ErrMarkdownEngineUnknown) {
		t.Fatalf("expected ErrMarkdownEngineUnknown, got %v", err)
	}

	for _, engine := range []string{"goldmark", "fallback", ""} {
		cfg.Markdown.Engine = engine
		if err := cfg.Validate(); err != nil {
			t.Fatalf("engine %q should validate, got %v", engine, err)
		}
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "zap"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid logging config, got %v", err)
	}
}
