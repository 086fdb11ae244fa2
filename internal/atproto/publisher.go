package atproto

import (
	"context"

	lexutil "github.com/bluesky-social/indigo/lex/util"

	"github.com/goliatone/go-postkit/internal/logging"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// Publisher fans normalized social content out to the AT-Protocol AppViews.
// A single session serves all of them; each app gets its own result so one
// failure never blocks the others.
type Publisher struct {
	client   *Client
	resolver *URLResolver
	logger   interfaces.Logger
}

// PublisherOption configures the publisher.
type PublisherOption func(*Publisher)

// WithURLResolver installs the web URL resolver for publish results.
func WithURLResolver(resolver *URLResolver) PublisherOption {
	return func(p *Publisher) {
		p.resolver = resolver
	}
}

// WithPublisherLogger injects the component logger.
func WithPublisherLogger(logger interfaces.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher wraps an atproto client as a platform publisher.
func NewPublisher(client *Client, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client: client,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the publisher backend.
func (p *Publisher) Name() string { return "atproto" }

// Platforms lists the AppViews this publisher serves.
func (p *Publisher) Platforms() []string {
	return []string{
		interfaces.PlatformBluesky,
		interfaces.PlatformFlashes,
		interfaces.PlatformPinksky,
	}
}

// Publish posts the content to every AppView. Login happens once; a login
// failure fails all three platforms. After login each app is attempted
// independently and errors are captured per platform, never propagated.
func (p *Publisher) Publish(ctx context.Context, content *interfaces.NormalizedContent) []interfaces.PlatformResult {
	platforms := p.Platforms()

	if err := p.client.Login(ctx); err != nil {
		p.logger.Error("atproto.login.failed", "error", err)
		results := make([]interfaces.PlatformResult, 0, len(platforms))
		for _, platform := range platforms {
			results = append(results, interfaces.PlatformResult{
				Platform: platform,
				Status:   interfaces.StatusFailed,
				Error:    err.Error(),
			})
		}
		return results
	}

	var image *lexutil.LexBlob
	if content.Social.Media.HasImage() {
		blob, err := p.client.UploadImage(ctx, content.Social.Media.ImagePath)
		if err != nil {
			// The thread still goes out, just without the cover.
			p.logger.Warn("atproto.image.upload_failed", "error", err, "path", content.Social.Media.ImagePath)
		} else {
			image = blob
		}
	}

	results := make([]interfaces.PlatformResult, 0, len(platforms))
	for _, platform := range platforms {
		results = append(results, p.publishTo(ctx, platform, content, image))
	}
	return results
}

func (p *Publisher) publishTo(ctx context.Context, platform string, content *interfaces.NormalizedContent, image *lexutil.LexBlob) interfaces.PlatformResult {
	var (
		uris []string
		uri  string
		err  error
	)

	switch platform {
	case interfaces.PlatformFlashes:
		// Flashes is a short-form app; it gets the summary, not the thread.
		uri, err = p.client.PostSingle(ctx, content.Social.Summary)
		if err == nil {
			uris = []string{uri}
		}
	default:
		// Bluesky and Pinksky both get the full thread with the cover
		// attached to the opening post.
		uris, err = p.client.PostThread(ctx, content.Social.Thread, content.Social.Hashtags, image)
	}

	if err != nil {
		p.logger.Error("atproto.publish.failed", "platform", platform, "error", err)
		return interfaces.PlatformResult{Platform: platform, Status: interfaces.StatusFailed, Error: err.Error()}
	}

	result := interfaces.PlatformResult{Platform: platform, Status: interfaces.StatusPublished}
	if len(uris) > 0 {
		result.URL = p.resolveURL(uris[0])
	}
	p.logger.Info("atproto.publish.ok", "platform", platform, "posts", len(uris), "url", result.URL)
	return result
}

func (p *Publisher) resolveURL(atURI string) string {
	url, err := p.resolver.PostURL(p.client.Handle(), atURI)
	if err != nil {
		p.logger.Warn("atproto.url.resolve_failed", "error", err, "uri", atURI)
		return atURI
	}
	return url
}
