package markdown

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
)

// postEnvelope captures the frontmatter fields a publishable post may carry.
// Unknown keys are preserved in Custom so callers can inspect them.
type postEnvelope struct {
	Title   string         `yaml:"title"`
	Short   string         `yaml:"short"`
	Summary string         `yaml:"summary"`
	Tags    tagList        `yaml:"tags"`
	Custom  map[string]any `yaml:",inline"`
}

// summaryHint prefers the dedicated short field, falling back to summary.
func (e postEnvelope) summaryHint() string {
	if hint := strings.TrimSpace(e.Short); hint != "" {
		return hint
	}
	return strings.TrimSpace(e.Summary)
}

// tagList accepts both a YAML sequence and a comma-separated scalar, since
// authors write tags either way.
type tagList []string

func (t *tagList) UnmarshalYAML(unmarshal func(any) error) error {
	var multi []string
	if err := unmarshal(&multi); err == nil {
		*t = normalizeTags(multi)
		return nil
	}

	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*t = normalizeTags(strings.Split(single, ","))
	return nil
}

func normalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseFrontMatter extracts metadata and the Markdown body from source. A
// malformed or unterminated frontmatter block is recoverable: the entire
// source is treated as body and an empty envelope is returned.
func parseFrontMatter(source []byte) (postEnvelope, []byte, bool) {
	var meta postEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return postEnvelope{}, source, false
	}
	return meta, body, true
}
