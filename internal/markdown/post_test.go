package markdown

import (
	"os"
	"strings"
	"testing"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestBuildPostFromFrontmatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	post, err := BuildPost("testdata/basic.md", data, NewFallbackParser())
	if err != nil {
		t.Fatalf("BuildPost: %v", err)
	}

	if post.Title != "Shipping a Side Project" {
		t.Fatalf("title mismatch: %q", post.Title)
	}
	if post.SummaryHint != "Notes on finally shipping" {
		t.Fatalf("summary hint mismatch: %q", post.SummaryHint)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "tech" || post.Tags[1] != "side projects" {
		t.Fatalf("tags mismatch: %#v", post.Tags)
	}
	if strings.Contains(post.Body, "---") {
		t.Fatalf("body still contains frontmatter delimiters: %q", post.Body)
	}
	if !strings.Contains(post.Body, "After three false starts") {
		t.Fatalf("body content missing: %q", post.Body)
	}
	if post.HTML == "" {
		t.Fatalf("expected rendered HTML")
	}
}

func TestBuildPostCommaSeparatedTags(t *testing.T) {
	data := readFixture(t, "testdata/comma_tags.md")

	post, err := BuildPost("testdata/comma_tags.md", data, NewFallbackParser())
	if err != nil {
		t.Fatalf("BuildPost: %v", err)
	}
	want := []string{"tech", "machine learning", "go"}
	if len(post.Tags) != len(want) {
		t.Fatalf("tags mismatch: %#v", post.Tags)
	}
	for i, tag := range want {
		if post.Tags[i] != tag {
			t.Fatalf("tag %d = %q, want %q", i, post.Tags[i], tag)
		}
	}
}

func TestBuildPostTitleFromHeading(t *testing.T) {
	data := readFixture(t, "testdata/no_frontmatter.md")

	post, err := BuildPost("testdata/no_frontmatter.md", data, NewFallbackParser())
	if err != nil {
		t.Fatalf("BuildPost: %v", err)
	}
	if post.Title != "Heading Title" {
		t.Fatalf("expected heading-derived title, got %q", post.Title)
	}
}

func TestBuildPostDefaultTitle(t *testing.T) {
	post, err := BuildPost("inline.md", []byte("Just a paragraph, no heading."), NewFallbackParser())
	if err != nil {
		t.Fatalf("BuildPost: %v", err)
	}
	if post.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", post.Title)
	}
}

func TestBuildPostUnterminatedFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: Broken\nno closing fence\n\nBody text survives.")

	post, err := BuildPost("broken.md", source, NewFallbackParser())
	if err != nil {
		t.Fatalf("BuildPost should recover from malformed frontmatter: %v", err)
	}
	if !strings.Contains(post.Body, "Body text survives.") {
		t.Fatalf("body lost during recovery: %q", post.Body)
	}
	if post.Title != DefaultTitle {
		t.Fatalf("malformed metadata must not leak a title, got %q", post.Title)
	}
}
