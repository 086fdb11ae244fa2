// Package normalize turns a parsed post into the platform-specific payload
// bundles consumed by the publishing backends. Everything here is pure:
// identical inputs produce identical output and no I/O happens.
package normalize

import (
	"strings"

	"github.com/goliatone/go-postkit/internal/logging"
	"github.com/goliatone/go-postkit/internal/textutil"
	"github.com/goliatone/go-postkit/internal/thread"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// Config captures the per-platform payload budgets.
type Config struct {
	MaxPostLength int
	SummaryLength int
}

// Normalizer builds NormalizedContent bundles from parsed posts.
type Normalizer struct {
	maxPostLength int
	summaryLength int
	logger        interfaces.Logger
}

// New constructs a Normalizer, substituting defaults for missing budgets.
func New(cfg Config, logger interfaces.Logger) *Normalizer {
	if cfg.MaxPostLength <= 0 {
		cfg.MaxPostLength = thread.DefaultMaxLength
	}
	if cfg.SummaryLength <= 0 {
		cfg.SummaryLength = 280
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Normalizer{
		maxPostLength: cfg.MaxPostLength,
		summaryLength: cfg.SummaryLength,
		logger:        logger,
	}
}

// Normalize derives the social and email payload bundles for a post. The
// result is recomputed on every call; nothing is cached or mutated.
func (n *Normalizer) Normalize(post *interfaces.Post, media interfaces.Media) *interfaces.NormalizedContent {
	chunks := thread.Chunk(post.Body, post.Title, n.maxPostLength)

	n.logger.Debug("normalize.thread", "chunks", len(chunks), "title", post.Title)

	return &interfaces.NormalizedContent{
		Social: interfaces.SocialContent{
			Thread:   chunks,
			Summary:  n.summary(post),
			Hashtags: Hashtags(post.Tags),
			Media:    media,
		},
		Email: interfaces.EmailContent{
			Subject: post.Title,
			HTML:    EmailDocument(post.Title, post.HTML, media.HasImage()),
			Media:   media,
		},
	}
}

// summary prefers the author-supplied hint, else the first paragraph. The
// title is prepended when the summary does not already mention it, and the
// result always fits the summary budget regardless of where it came from.
func (n *Normalizer) summary(post *interfaces.Post) string {
	summary := post.SummaryHint
	if summary == "" {
		summary = textutil.FirstParagraph(post.Body)
	}

	if !containsFold(summary, post.Title) {
		summary = post.Title + "\n\n" + summary
	}
	return textutil.Truncate(summary, n.summaryLength)
}

// Hashtags formats tags for the social backends: whitespace stripped,
// internal spaces removed, "#" prefixed. Order and duplicates are preserved.
func Hashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		compact := strings.Join(strings.Fields(tag), "")
		if compact == "" {
			continue
		}
		out = append(out, "#"+compact)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
