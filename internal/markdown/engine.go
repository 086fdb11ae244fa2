package markdown

import (
	"strings"

	"github.com/goliatone/go-postkit/internal/runtimeconfig"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// NewParser selects the renderer variant from configuration. The choice is
// made once, up front, so the fallback path stays unit-testable in isolation
// instead of hiding behind a runtime rescue.
func NewParser(cfg runtimeconfig.MarkdownConfig) interfaces.MarkdownParser {
	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case "fallback":
		return NewFallbackParser()
	default:
		return NewGoldmarkParser(toParseOptions(cfg.Parser))
	}
}

func toParseOptions(cfg runtimeconfig.MarkdownParserConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), cfg.Extensions...),
		Sanitize:   cfg.Sanitize,
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
	}
}
