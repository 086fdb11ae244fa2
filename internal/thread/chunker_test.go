package thread

import (
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-postkit/internal/textutil"
)

func TestChunkShortBodySingleChunk(t *testing.T) {
	chunks := Chunk("Hello world.", "T", 50)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %#v", len(chunks), chunks)
	}
	if chunks[0] != "T\n\nHello world." {
		t.Fatalf("unexpected chunk: %q", chunks[0])
	}
	if strings.Contains(chunks[0], "(1/1)") {
		t.Fatalf("single chunk must not carry a marker: %q", chunks[0])
	}
}

func TestChunkEmptyBodyYieldsTitleChunk(t *testing.T) {
	chunks := Chunk("", "Just a Title", 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Just a Title" {
		t.Fatalf("unexpected chunk: %q", chunks[0])
	}

	// Body reduced to nothing once level-1 headings are stripped.
	chunks = Chunk("# Only Heading", "Title", 100)
	if len(chunks) != 1 || chunks[0] != "Title" {
		t.Fatalf("expected bare title chunk, got %#v", chunks)
	}
}

func TestChunkLongBodyRespectsBudgetWithMarkers(t *testing.T) {
	paragraphs := make([]string, 10)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat(fmt.Sprintf("p%d word ", i), 13)[:100]
	}
	body := strings.Join(paragraphs, "\n\n")

	chunks := Chunk(body, "A Ten Paragraph Post", 300)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	total := len(chunks)
	for i, chunk := range chunks {
		if textutil.Length(chunk) > 300 {
			t.Fatalf("chunk %d exceeds budget (%d): %q", i, textutil.Length(chunk), chunk)
		}
		marker := fmt.Sprintf("\n\n(%d/%d)", i+1, total)
		if !strings.HasSuffix(chunk, marker) {
			t.Fatalf("chunk %d missing marker %q: %q", i, marker, chunk)
		}
	}
}

func TestChunkPreservesParagraphOrder(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 8; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("Paragraph number %02d with some filler text to occupy space.", i))
	}
	body := strings.Join(paragraphs, "\n\n")

	chunks := Chunk(body, "Ordered", 120)
	joined := strings.Join(chunks, "\n")
	last := -1
	for i := 0; i < 8; i++ {
		idx := strings.Index(joined, fmt.Sprintf("Paragraph number %02d", i))
		if idx < 0 {
			t.Fatalf("paragraph %d missing from output", i)
		}
		if idx < last {
			t.Fatalf("paragraph %d appears out of order", i)
		}
		last = idx
	}
}

func TestChunkTitleTooLongForFirstParagraph(t *testing.T) {
	title := strings.Repeat("Long Title ", 10)
	body := "Short paragraph."
	chunks := Chunk(body, title, 60)
	if len(chunks) < 2 {
		t.Fatalf("expected truncated-title chunk plus body chunk, got %#v", chunks)
	}
	if !strings.HasSuffix(strings.SplitN(chunks[0], "\n\n", 2)[0], "...") {
		t.Fatalf("expected truncated title in first chunk: %q", chunks[0])
	}
	if !strings.Contains(strings.Join(chunks, " "), "Short paragraph.") {
		t.Fatalf("body paragraph lost: %#v", chunks)
	}
}

func TestChunkOversizedParagraphSplitsBySentence(t *testing.T) {
	var sentences []string
	for i := 0; i < 6; i++ {
		sentences = append(sentences, fmt.Sprintf("Sentence %d has a moderate amount of words inside it.", i))
	}
	body := strings.Join(sentences, " ")

	chunks := Chunk(body, "T", 120)
	if len(chunks) < 2 {
		t.Fatalf("expected sentence-level split, got %#v", chunks)
	}
	for i, chunk := range chunks {
		if textutil.Length(chunk) > 120 {
			t.Fatalf("chunk %d exceeds budget: %q", i, chunk)
		}
	}
}

func TestChunkOversizedWordTerminates(t *testing.T) {
	// A single word larger than the budget is never sub-split. It surfaces as
	// its own chunk and the post-marker safety net clamps it to the budget.
	word := strings.Repeat("x", 400)
	chunks := Chunk(word, "T", 100)

	if len(chunks) < 2 {
		t.Fatalf("expected title chunk plus word chunk, got %#v", chunks)
	}
	found := false
	for i, chunk := range chunks {
		if textutil.Length(chunk) > 100 {
			t.Fatalf("chunk %d escaped the safety net: %d runes", i, textutil.Length(chunk))
		}
		if strings.HasPrefix(chunk, strings.Repeat("x", 50)) {
			found = true
		}
	}
	if !found {
		t.Fatalf("oversized word missing from output: %#v", chunks)
	}
}

func TestChunkHeadingPreprocessing(t *testing.T) {
	body := "# Dropped Title\n\n## Section One\n\nBody text here.\n\n### Detail\n\nMore text."
	chunks := Chunk(body, "T", 300)
	joined := strings.Join(chunks, "\n")

	if strings.Contains(joined, "Dropped Title") {
		t.Fatalf("level-1 heading should be stripped: %q", joined)
	}
	if !strings.Contains(joined, sectionGlyph+"Section One") {
		t.Fatalf("level-2 heading should keep a lead glyph: %q", joined)
	}
	if !strings.Contains(joined, subsectionGlyph+"Detail") {
		t.Fatalf("level-3 heading should keep a lead glyph: %q", joined)
	}
	if strings.Contains(joined, "##") {
		t.Fatalf("heading markers should not survive: %q", joined)
	}
}

func TestMarkerWidthMatchesReservedSpace(t *testing.T) {
	body := strings.Repeat("A paragraph with enough words to need packing across several posts. ", 40)
	chunks := Chunk(body, "Fixed Point", 300)
	total := len(chunks)
	if total < 2 {
		t.Fatalf("expected a multi-chunk thread, got %d", total)
	}
	for i, chunk := range chunks {
		if got := textutil.Length(chunk); got > 300 {
			t.Fatalf("chunk %d/%d overflows after marker application: %d", i+1, total, got)
		}
	}
}
