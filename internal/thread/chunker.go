// Package thread splits a title and Markdown body into an ordered sequence
// of post-sized chunks. Each chunk, including its trailing "(i/N)" position
// marker, stays within the platform's length budget. The marker width depends
// on the final chunk count, which in turn depends on the per-chunk budget, so
// the reservation is resolved by a bounded fixed-point iteration.
package thread

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-postkit/internal/textutil"
)

// DefaultMaxLength is the per-post budget used by the social normalizer.
const DefaultMaxLength = 300

// initialReserve covers markers up to two digits per side: "\n\n(99/99)".
const initialReserve = 10

// maxReservePasses caps the fixed-point loop. Chunk counts move in discrete
// jumps, so the loop settles within a correction or two; the cap guards
// against oscillation between two counts.
const maxReservePasses = 5

const (
	sectionGlyph    = "▶ "
	subsectionGlyph = "• "
	paragraphJoin   = "\n\n"
)

// Chunk splits title + body into ordered chunks of at most maxLength code
// points each. When more than one chunk results, every chunk carries a
// trailing "\n\n(i/N)" marker and still fits the budget. The function never
// errors: degenerate budgets produce best-effort oversized chunks at the
// word-decomposition level instead.
func Chunk(body, title string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	paragraphs := splitParagraphs(stripHeadings(body))

	reserved := initialReserve
	var chunks []string
	for pass := 0; pass < maxReservePasses; pass++ {
		effective := maxLength - reserved
		if effective < 1 {
			effective = 1
		}
		chunks = buildChunks(title, paragraphs, effective)

		want := markerWidth(len(chunks))
		if want == reserved {
			break
		}
		reserved = want
	}

	total := len(chunks)
	if total > 1 {
		for i := range chunks {
			marked := fmt.Sprintf("%s%s(%d/%d)", chunks[i], paragraphJoin, i+1, total)
			if textutil.Length(marked) > maxLength {
				// The fixed point did not fully converge. Clamp as a safety
				// net, even if that clips the marker.
				marked = textutil.Truncate(marked, maxLength)
			}
			chunks[i] = marked
		}
	}
	return chunks
}

func markerWidth(total int) int {
	if total < 1 {
		total = 1
	}
	return textutil.Length(fmt.Sprintf("%s(%d/%d)", paragraphJoin, total, total))
}

// stripHeadings removes level-1 heading lines entirely and rewrites level-2
// and level-3 headings as glyph-prefixed lines so section structure survives
// in plain text.
func stripHeadings(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			out = append(out, subsectionGlyph+strings.TrimSpace(line[4:]))
		case strings.HasPrefix(line, "## "):
			out = append(out, sectionGlyph+strings.TrimSpace(line[3:]))
		case strings.HasPrefix(line, "# "), strings.TrimSpace(line) == "#":
			// dropped: the title already covers the top-level heading
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func splitParagraphs(content string) []string {
	var paragraphs []string
	for _, para := range strings.Split(content, paragraphJoin) {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// buildChunks runs one chunk-building pass against an effective budget.
func buildChunks(title string, paragraphs []string, effective int) []string {
	if len(paragraphs) == 0 {
		return []string{textutil.Truncate(title, effective)}
	}

	var chunks []string
	remaining := paragraphs

	first := title + paragraphJoin + paragraphs[0]
	if textutil.Length(first) <= effective {
		chunks = append(chunks, first)
		remaining = paragraphs[1:]
	} else {
		chunks = append(chunks, textutil.Truncate(title, effective))
	}

	current := ""
	for _, para := range remaining {
		candidate := para
		if current != "" {
			candidate = current + paragraphJoin + para
		}
		if textutil.Length(candidate) <= effective {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if textutil.Length(para) > effective {
			chunks, current = packSentences(chunks, para, effective)
		} else {
			current = para
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// packSentences greedily packs the sentences of an oversized paragraph,
// falling back to word decomposition for sentences that alone exceed the
// budget. Returns the updated chunk list and the unflushed tail.
func packSentences(chunks []string, para string, effective int) ([]string, string) {
	current := ""
	for _, sentence := range splitSentences(para) {
		candidate := sentence
		if current != "" {
			candidate = current + " " + sentence
		}
		if textutil.Length(candidate) <= effective {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if textutil.Length(sentence) > effective {
			chunks, current = packWords(chunks, sentence, effective)
		} else {
			current = sentence
		}
	}
	return chunks, current
}

// packWords greedily packs whitespace-delimited words. A single word larger
// than the budget is emitted as an oversized chunk: there is no sub-word
// splitting.
func packWords(chunks []string, sentence string, effective int) ([]string, string) {
	current := ""
	for _, word := range strings.Fields(sentence) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if textutil.Length(candidate) <= effective {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if textutil.Length(word) > effective {
			chunks = append(chunks, word)
		} else {
			current = word
		}
	}
	return chunks, current
}

// splitSentences breaks text after ".", "!" or "?" followed by whitespace.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
