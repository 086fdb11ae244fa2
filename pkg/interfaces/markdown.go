package interfaces

// MarkdownParser renders Markdown content into HTML. Implementations must be
// deterministic and side-effect free so callers can share a single instance.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions captures renderer behaviour toggles.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Post is the immutable result of parsing a Markdown source document.
// Title is always non-empty after parsing and Body never contains the
// frontmatter delimiter block.
type Post struct {
	Title       string
	SummaryHint string
	Tags        []string
	Body        string
	HTML        string
	SourcePath  string
	Meta        map[string]any
}
