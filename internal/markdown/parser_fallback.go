package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-postkit/pkg/interfaces"
)

var (
	reFallbackH3   = regexp.MustCompile(`(?m)^### (.+)$`)
	reFallbackH2   = regexp.MustCompile(`(?m)^## (.+)$`)
	reFallbackH1   = regexp.MustCompile(`(?m)^# (.+)$`)
	reFallbackBold = regexp.MustCompile(`\*\*(.+?)\*\*`)
	// Matches single-asterisk emphasis only after bold pairs are consumed.
	reFallbackItalic = regexp.MustCompile(`\*([^*]+)\*`)
	reFallbackLink   = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// FallbackParser is a deterministic, dependency-light Markdown renderer
// covering the subset posts actually need: three heading levels, bold,
// italic, links, and paragraph wrapping. Selected at construction time when
// the rich engine is not wanted; it never fails, and markup it does not
// understand passes through literally.
type FallbackParser struct{}

// NewFallbackParser constructs the minimal renderer.
func NewFallbackParser() *FallbackParser {
	return &FallbackParser{}
}

// Parse renders Markdown into HTML.
func (p *FallbackParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, interfaces.ParseOptions{})
}

// ParseWithOptions renders Markdown into HTML. Options are accepted for
// interface parity; the fallback subset has nothing to toggle.
func (p *FallbackParser) ParseWithOptions(markdown []byte, _ interfaces.ParseOptions) ([]byte, error) {
	text := string(markdown)

	// Headings deepest-first so "## x" is not half-consumed by the h1 rule.
	text = reFallbackH3.ReplaceAllString(text, "<h3>$1</h3>")
	text = reFallbackH2.ReplaceAllString(text, "<h2>$1</h2>")
	text = reFallbackH1.ReplaceAllString(text, "<h1>$1</h1>")

	text = reFallbackBold.ReplaceAllString(text, "<strong>$1</strong>")
	text = reFallbackItalic.ReplaceAllString(text, "<em>$1</em>")
	text = reFallbackLink.ReplaceAllString(text, `<a href="$2">$1</a>`)

	var blocks []string
	for _, block := range strings.Split(text, "\n\n") {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "<h") {
			blocks = append(blocks, trimmed)
			continue
		}
		blocks = append(blocks, "<p>"+trimmed+"</p>")
	}

	return []byte(strings.Join(blocks, "\n")), nil
}

var _ interfaces.MarkdownParser = (*FallbackParser)(nil)
var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)
