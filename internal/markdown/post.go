package markdown

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// DefaultTitle is used when neither frontmatter nor a level-1 heading
// provides one. Parsing always yields a non-empty title.
const DefaultTitle = "Untitled Post"

// BuildPost parses a frontmatter-annotated Markdown source into a Post and
// renders its body through the supplied parser. Title resolution order:
// frontmatter title, first level-1 heading, DefaultTitle.
func BuildPost(path string, source []byte, parser interfaces.MarkdownParser) (*interfaces.Post, error) {
	meta, body, _ := parseFrontMatter(source)

	bodyText := strings.TrimSpace(string(body))

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = firstHeading(bodyText)
	}
	if title == "" {
		title = DefaultTitle
	}

	html, err := parser.Parse([]byte(bodyText))
	if err != nil {
		return nil, fmt.Errorf("render post %s: %w", path, err)
	}

	return &interfaces.Post{
		Title:       title,
		SummaryHint: meta.summaryHint(),
		Tags:        append([]string(nil), meta.Tags...),
		Body:        bodyText,
		HTML:        string(html),
		SourcePath:  path,
		Meta:        cloneMap(meta.Custom),
	}, nil
}

// firstHeading returns the text of the first level-1 heading line, if any.
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
