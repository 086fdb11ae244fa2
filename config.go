package postkit

import "github.com/goliatone/go-postkit/internal/runtimeconfig"

// Config aggregates runtime configuration for the module.
type Config = runtimeconfig.Config

// NormalizeConfig captures per-platform payload budgets.
type NormalizeConfig = runtimeconfig.NormalizeConfig

// MarkdownConfig captures parser behaviour for post ingestion.
type MarkdownConfig = runtimeconfig.MarkdownConfig

// PublishConfig captures dispatch behaviour for the publish workflow.
type PublishConfig = runtimeconfig.PublishConfig

// HistoryConfig captures the local publish-ledger settings.
type HistoryConfig = runtimeconfig.HistoryConfig

// NavigationConfig captures routing configuration for public post URLs.
type NavigationConfig = runtimeconfig.NavigationConfig

// Features toggles module functionality.
type Features = runtimeconfig.Features

// LoggingConfig captures provider-specific logging options.
type LoggingConfig = runtimeconfig.LoggingConfig

// DefaultConfig returns opinionated defaults for the publish workflow.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
