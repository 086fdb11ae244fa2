package interfaces

import "context"

// Known platform names. Every PublishReport carries one result per name so
// callers never have to guess whether a platform was attempted.
const (
	PlatformBluesky  = "Bluesky"
	PlatformFlashes  = "Flashes"
	PlatformPinksky  = "Pinksky"
	PlatformSubstack = "Substack"
)

// KnownPlatforms returns the fixed platform roster in report order.
func KnownPlatforms() []string {
	return []string{PlatformBluesky, PlatformFlashes, PlatformPinksky, PlatformSubstack}
}

// Media references optional cover assets attached to a publish request.
type Media struct {
	ImagePath string
	VideoPath string
}

// HasImage reports whether a cover image was supplied.
func (m Media) HasImage() bool { return m.ImagePath != "" }

// HasVideo reports whether a video was supplied.
func (m Media) HasVideo() bool { return m.VideoPath != "" }

// SocialContent is the payload bundle for thread-based social backends.
type SocialContent struct {
	Thread   []string
	Summary  string
	Hashtags []string
	Media    Media
}

// EmailContent is the payload bundle for the newsletter backend.
type EmailContent struct {
	Subject string
	HTML    string
	Media   Media
}

// NormalizedContent is the platform-specific view derived from a Post. It is
// recomputed on every publish; nothing here is cached or shared.
type NormalizedContent struct {
	Social SocialContent
	Email  EmailContent
}

// PlatformStatus enumerates per-platform publish outcomes.
type PlatformStatus string

const (
	StatusPublished PlatformStatus = "published"
	StatusFailed    PlatformStatus = "failed"
	StatusSkipped   PlatformStatus = "skipped"
)

// PlatformResult records the outcome for a single named platform. Transport
// failures land here as Status/Error, never as returned errors.
type PlatformResult struct {
	Platform string
	Status   PlatformStatus
	URL      string
	Error    string
}

// Publisher dispatches normalized content to one or more platforms. The
// returned slice contains one result per platform the publisher covers.
type Publisher interface {
	Name() string
	Platforms() []string
	Publish(ctx context.Context, content *NormalizedContent) []PlatformResult
}

// PublishReport aggregates results across every known platform.
type PublishReport struct {
	Results []PlatformResult
}

// Result returns the entry for the named platform, if present.
func (r *PublishReport) Result(platform string) (PlatformResult, bool) {
	for _, res := range r.Results {
		if res.Platform == platform {
			return res, true
		}
	}
	return PlatformResult{}, false
}

// Succeeded lists platforms that published successfully.
func (r *PublishReport) Succeeded() []string {
	return r.byStatus(StatusPublished)
}

// Failed lists platforms whose publish attempt failed.
func (r *PublishReport) Failed() []string {
	return r.byStatus(StatusFailed)
}

func (r *PublishReport) byStatus(status PlatformStatus) []string {
	var names []string
	for _, res := range r.Results {
		if res.Status == status {
			names = append(names, res.Platform)
		}
	}
	return names
}
