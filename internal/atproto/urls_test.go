package atproto

import (
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-postkit/internal/runtimeconfig"
)

func testNavigationConfig() runtimeconfig.NavigationConfig {
	return runtimeconfig.NavigationConfig{
		RouteConfig: &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "bluesky",
					BaseURL: "https://bsky.app",
					Paths: map[string]string{
						"post": "/profile/:handle/post/:rkey",
					},
				},
			},
		},
		URLKit: runtimeconfig.URLKitResolverConfig{
			Group:       "bluesky",
			Route:       "post",
			HandleParam: "handle",
			RKeyParam:   "rkey",
		},
	}
}

func TestPostURL(t *testing.T) {
	resolver := NewURLResolver(testNavigationConfig())
	if resolver == nil {
		t.Fatalf("expected resolver for configured routes")
	}

	url, err := resolver.PostURL("alice.bsky.social", "at://did:plc:abc/app.bsky.feed.post/3k44aaa")
	if err != nil {
		t.Fatalf("PostURL: %v", err)
	}
	want := "https://bsky.app/profile/alice.bsky.social/post/3k44aaa"
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestPostURLNoRecordKey(t *testing.T) {
	resolver := NewURLResolver(testNavigationConfig())
	if _, err := resolver.PostURL("alice.bsky.social", "at://"); err == nil {
		t.Fatalf("expected error for uri without record key")
	}
}

func TestPostURLNilResolverFallsBack(t *testing.T) {
	var resolver *URLResolver
	url, err := resolver.PostURL("alice.bsky.social", "at://did:plc:abc/app.bsky.feed.post/3k44aaa")
	if err != nil {
		t.Fatalf("nil resolver must not error: %v", err)
	}
	if url != "at://did:plc:abc/app.bsky.feed.post/3k44aaa" {
		t.Fatalf("nil resolver must return the raw uri, got %q", url)
	}
}

func TestNewURLResolverWithoutRoutes(t *testing.T) {
	if NewURLResolver(runtimeconfig.NavigationConfig{}) != nil {
		t.Fatalf("expected nil resolver when no route config is present")
	}
}
