package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrPostLengthInvalid rejects budgets that cannot hold a marker suffix.
var ErrPostLengthInvalid = errors.New("postkit config: max post length must be positive")

// ErrSummaryLengthInvalid rejects non-positive summary budgets.
var ErrSummaryLengthInvalid = errors.New("postkit config: summary length must be positive")

// ErrHistoryDatabaseRequired ensures the ledger has a SQLite path when enabled.
var ErrHistoryDatabaseRequired = errors.New("postkit config: history database path is required when history is enabled")

// ErrHistoryCacheTTLInvalid rejects negative ledger cache lifetimes.
var ErrHistoryCacheTTLInvalid = errors.New("postkit config: history cache TTL must be zero or positive")
var ErrMarkdownEngineUnknown = errors.New("postkit config: markdown engine is invalid")
var ErrLoggingProviderRequired = errors.New("postkit config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("postkit config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("postkit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("postkit config: logging format is invalid")
var ErrPostDelayInvalid = errors.New("postkit config: post delay must be zero or positive")

// Config aggregates feature flags and adapter bindings for the postkit module.
// Fields intentionally use simple types so host applications can extend them.
type Config struct {
	Enabled    bool
	Normalize  NormalizeConfig
	Markdown   MarkdownConfig
	Publish    PublishConfig
	History    HistoryConfig
	Navigation NavigationConfig
	Features   Features
	Logging    LoggingConfig
}

// NormalizeConfig captures the per-platform payload budgets.
type NormalizeConfig struct {
	MaxPostLength int
	SummaryLength int
}

// MarkdownConfig captures parser behaviour for post ingestion.
type MarkdownConfig struct {
	Engine string
	Parser MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// PublishConfig captures dispatch behaviour for the publish workflow.
type PublishConfig struct {
	PostDelay time.Duration
	Timeout   time.Duration
}

// HistoryConfig captures the local publish-ledger settings.
type HistoryConfig struct {
	DatabasePath string
	CacheTTL     time.Duration
}

// NavigationConfig captures routing configuration for public post URLs.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based URL resolver.
type URLKitResolverConfig struct {
	Group       string
	Route       string
	HandleParam string
	RKeyParam   string
}

// Features toggles module functionality.
type Features struct {
	History bool
	Logger  bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults matching the publish workflow.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Normalize: NormalizeConfig{
			MaxPostLength: 300,
			SummaryLength: 280,
		},
		Markdown: MarkdownConfig{
			Engine: "goldmark",
			Parser: MarkdownParserConfig{},
		},
		Publish: PublishConfig{
			PostDelay: time.Second,
		},
		History: HistoryConfig{
			DatabasePath: "data/postkit.db",
			CacheTTL:     5 * time.Minute,
		},
		Navigation: NavigationConfig{
			RouteConfig: &urlkit.Config{
				Groups: []urlkit.GroupConfig{
					{
						Name:    "bluesky",
						BaseURL: "https://bsky.app",
						Paths: map[string]string{
							"post":    "/profile/:handle/post/:rkey",
							"profile": "/profile/:handle",
						},
					},
				},
			},
			URLKit: URLKitResolverConfig{
				Group:       "bluesky",
				Route:       "post",
				HandleParam: "handle",
				RKeyParam:   "rkey",
			},
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Normalize.MaxPostLength <= 0 {
		return ErrPostLengthInvalid
	}
	if cfg.Normalize.SummaryLength <= 0 {
		return ErrSummaryLengthInvalid
	}
	if engine := normalizeEngine(cfg.Markdown.Engine); engine != "" && !isSupportedEngine(engine) {
		return fmt.Errorf("%w: %s", ErrMarkdownEngineUnknown, engine)
	}
	if cfg.Publish.PostDelay < 0 {
		return ErrPostDelayInvalid
	}
	if cfg.Features.History {
		if strings.TrimSpace(cfg.History.DatabasePath) == "" {
			return ErrHistoryDatabaseRequired
		}
		if cfg.History.CacheTTL < 0 {
			return ErrHistoryCacheTTLInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeEngine(engine string) string {
	return strings.ToLower(strings.TrimSpace(engine))
}

func isSupportedEngine(engine string) bool {
	switch engine {
	case "goldmark", "fallback":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
