package normalize

import (
	"html/template"
	"strings"
)

// CoverImageCID is the content-id the mailer uses when embedding the cover
// image, so the template and the MIME assembly stay in sync.
const CoverImageCID = "cover-image"

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
    line-height: 1.6;
    color: #333;
    max-width: 680px;
    margin: 0 auto;
    padding: 20px;
}
h1 { font-size: 2em; margin-bottom: 0.5em; }
h2 { font-size: 1.5em; margin-top: 1.5em; }
img { max-width: 100%; height: auto; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .HasCover}}<img src="cid:{{.CoverCID}}" alt="">
{{end}}{{.Content}}
</body>
</html>`))

type emailData struct {
	Title    string
	Content  template.HTML
	HasCover bool
	CoverCID string
}

// EmailDocument wraps pre-rendered post HTML into a complete, self-contained
// email document. The cover image reference appears only when an image was
// supplied alongside the post.
func EmailDocument(title, contentHTML string, hasCover bool) string {
	var sb strings.Builder
	err := emailTemplate.Execute(&sb, emailData{
		Title:    title,
		Content:  template.HTML(contentHTML),
		HasCover: hasCover,
		CoverCID: CoverImageCID,
	})
	if err != nil {
		// The template is static and the data trivial; execution cannot
		// realistically fail, but keep a deterministic fallback anyway.
		return "<html><body><h1>" + template.HTMLEscapeString(title) + "</h1>" + contentHTML + "</body></html>"
	}
	return sb.String()
}
