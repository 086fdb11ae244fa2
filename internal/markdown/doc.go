// Package markdown parses frontmatter-annotated Markdown sources into posts
// and renders their bodies to HTML through a configurable engine.
package markdown
