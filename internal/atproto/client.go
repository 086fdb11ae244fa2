// Package atproto dispatches normalized content to AT-Protocol AppViews. It
// owns session creation, media blob upload, and reply-chain threading; the
// content itself arrives fully normalized and is never modified here.
package atproto

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	appbsky "github.com/bluesky-social/indigo/api/bsky"
	lexutil "github.com/bluesky-social/indigo/lex/util"
	"github.com/bluesky-social/indigo/xrpc"

	"github.com/goliatone/go-postkit/internal/logging"
	"github.com/goliatone/go-postkit/pkg/interfaces"
)

// DefaultHost is the public PDS entry point.
const DefaultHost = "https://bsky.social"

const postCollection = "app.bsky.feed.post"

// Credentials identify the account used for every AppView.
type Credentials struct {
	Host     string
	Handle   string
	Password string
}

// Client wraps an authenticated xrpc session.
type Client struct {
	xrpc      *xrpc.Client
	creds     Credentials
	postDelay time.Duration
	logger    interfaces.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// Option configures optional client behaviour.
type Option func(*Client)

// WithPostDelay sets the pause between sequential thread posts. This is a
// courtesy to the PDS rate limiter, not a correctness requirement.
func WithPostDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.postDelay = d
		}
	}
}

// WithLogger injects the component logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.xrpc.Client = httpClient
		}
	}
}

// NewClient constructs an unauthenticated client; call Login before posting.
func NewClient(creds Credentials, opts ...Option) *Client {
	host := creds.Host
	if host == "" {
		host = DefaultHost
	}
	c := &Client{
		xrpc:      &xrpc.Client{Host: host},
		creds:     creds,
		postDelay: time.Second,
		logger:    logging.NoOp(),
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login creates a session. One session serves every AT-Protocol AppView.
func (c *Client) Login(ctx context.Context) error {
	out, err := comatproto.ServerCreateSession(ctx, c.xrpc, &comatproto.ServerCreateSession_Input{
		Identifier: c.creds.Handle,
		Password:   c.creds.Password,
	})
	if err != nil {
		return fmt.Errorf("atproto login %s: %w", c.creds.Handle, err)
	}

	c.xrpc.Auth = &xrpc.AuthInfo{
		AccessJwt:  out.AccessJwt,
		RefreshJwt: out.RefreshJwt,
		Handle:     out.Handle,
		Did:        out.Did,
	}
	c.logger.Debug("atproto.session.created", "handle", out.Handle, "did", out.Did)
	return nil
}

// Handle returns the session handle once logged in.
func (c *Client) Handle() string {
	if c.xrpc.Auth == nil {
		return c.creds.Handle
	}
	return c.xrpc.Auth.Handle
}

// UploadImage uploads a local image file and returns its blob reference.
func (c *Client) UploadImage(ctx context.Context, path string) (*lexutil.LexBlob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	out, err := comatproto.RepoUploadBlob(ctx, c.xrpc, f)
	if err != nil {
		return nil, fmt.Errorf("upload blob %s: %w", path, err)
	}
	return out.Blob, nil
}

// PostSingle publishes one standalone post and returns its at:// URI.
func (c *Client) PostSingle(ctx context.Context, text string) (string, error) {
	ref, err := c.createPost(ctx, &appbsky.FeedPost{
		Text:      text,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return ref.Uri, nil
}

// PostThread publishes chunks in order as a reply chain. The first post
// carries the optional image embed and the hashtag facets; every reply
// references both the thread root and its immediate parent, preserving the
// backend's causal ordering. Returns the at:// URIs in post order.
func (c *Client) PostThread(ctx context.Context, chunks []string, hashtags []string, image *lexutil.LexBlob) ([]string, error) {
	var (
		root   *comatproto.RepoStrongRef
		parent *comatproto.RepoStrongRef
		uris   []string
	)

	for i, chunk := range chunks {
		post := &appbsky.FeedPost{
			Text:      chunk,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}

		if i == 0 {
			post.Facets = HashtagFacets(chunk, hashtags)
			if image != nil {
				post.Embed = &appbsky.FeedPost_Embed{
					EmbedImages: &appbsky.EmbedImages{
						Images: []*appbsky.EmbedImages_Image{{Alt: "", Image: image}},
					},
				}
			}
		} else {
			post.Reply = &appbsky.FeedPost_ReplyRef{Root: root, Parent: parent}
		}

		ref, err := c.createPost(ctx, post)
		if err != nil {
			return uris, fmt.Errorf("post chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if i == 0 {
			root = ref
		}
		parent = ref
		uris = append(uris, ref.Uri)

		if i < len(chunks)-1 && c.postDelay > 0 {
			if err := c.sleep(ctx, c.postDelay); err != nil {
				return uris, err
			}
		}
	}
	return uris, nil
}

func (c *Client) createPost(ctx context.Context, post *appbsky.FeedPost) (*comatproto.RepoStrongRef, error) {
	if c.xrpc.Auth == nil {
		return nil, fmt.Errorf("atproto: not logged in")
	}

	out, err := comatproto.RepoCreateRecord(ctx, c.xrpc, &comatproto.RepoCreateRecord_Input{
		Collection: postCollection,
		Repo:       c.xrpc.Auth.Did,
		Record:     &lexutil.LexiconTypeDecoder{Val: post},
	})
	if err != nil {
		return nil, err
	}
	return &comatproto.RepoStrongRef{Cid: out.Cid, Uri: out.Uri}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
