package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-postkit/internal/runtimeconfig"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

func TestGoldmarkParserRendersExtras(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Title\n\nSome **bold** text and a [link](https://example.com).\n\n| a | b |\n|---|---|\n| 1 | 2 |"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(html)
	for _, want := range []string{"<h1", "<strong>bold</strong>", `href="https://example.com"`, "<table>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered HTML missing %q:\n%s", want, out)
		}
	}
}

func TestFallbackParserHeadings(t *testing.T) {
	parser := NewFallbackParser()

	html, err := parser.Parse([]byte("# One\n\n## Two\n\n### Three"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(html)
	for _, want := range []string{"<h1>One</h1>", "<h2>Two</h2>", "<h3>Three</h3>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "<p><h") {
		t.Fatalf("headings must not be wrapped in paragraphs: %q", out)
	}
}

func TestFallbackParserInlineMarkup(t *testing.T) {
	parser := NewFallbackParser()

	html, err := parser.Parse([]byte("Mix of **bold**, *italic* and [a link](https://example.com/x)."))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(html)
	for _, want := range []string{
		"<strong>bold</strong>",
		"<em>italic</em>",
		`<a href="https://example.com/x">a link</a>`,
		"<p>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestFallbackParserMalformedInputPassesThrough(t *testing.T) {
	parser := NewFallbackParser()

	inputs := []string{
		"**unterminated bold",
		"[broken link](",
		"*",
		"",
	}
	for _, input := range inputs {
		out, err := parser.Parse([]byte(input))
		if err != nil {
			t.Fatalf("fallback must never fail, got %v for %q", err, input)
		}
		if input != "" && !strings.Contains(string(out), strings.Trim(input, "*")) && input != "*" {
			t.Fatalf("malformed markup should pass through literally: %q -> %q", input, out)
		}
	}
}

func TestNewParserSelectsEngine(t *testing.T) {
	if _, ok := NewParser(runtimeconfig.MarkdownConfig{Engine: "fallback"}).(*FallbackParser); !ok {
		t.Fatalf("expected fallback parser")
	}
	if _, ok := NewParser(runtimeconfig.MarkdownConfig{Engine: "goldmark"}).(*GoldmarkParser); !ok {
		t.Fatalf("expected goldmark parser")
	}
	if _, ok := NewParser(runtimeconfig.MarkdownConfig{}).(*GoldmarkParser); !ok {
		t.Fatalf("expected goldmark parser by default")
	}
}
