package atproto

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-postkit/internal/runtimeconfig"
)

// URLResolver translates at:// record URIs into public web URLs via a
// go-urlkit route manager. The route template carries the handle and record
// key parameters, so alternative frontends only need a config change.
type URLResolver struct {
	manager     *urlkit.RouteManager
	group       string
	route       string
	handleParam string
	rkeyParam   string
}

// NewURLResolver builds a resolver from the navigation config. Returns nil
// when no route config is present; callers fall back to the raw at:// URI.
func NewURLResolver(cfg runtimeconfig.NavigationConfig) *URLResolver {
	if cfg.RouteConfig == nil {
		return nil
	}
	return &URLResolver{
		manager:     urlkit.NewRouteManager(cfg.RouteConfig),
		group:       cfg.URLKit.Group,
		route:       cfg.URLKit.Route,
		handleParam: cfg.URLKit.HandleParam,
		rkeyParam:   cfg.URLKit.RKeyParam,
	}
}

// PostURL resolves a web URL for a published record. The record key is the
// final path segment of the at:// URI.
func (r *URLResolver) PostURL(handle, atURI string) (string, error) {
	if r == nil || r.manager == nil {
		return atURI, nil
	}

	rkey := recordKey(atURI)
	if rkey == "" {
		return "", fmt.Errorf("atproto: no record key in uri %q", atURI)
	}

	group, err := lookupGroup(r.manager, r.group)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}

	url, err := builder.
		WithParam(r.handleParam, handle).
		WithParam(r.rkeyParam, rkey).
		Build()
	if err != nil {
		return "", fmt.Errorf("atproto: build post url: %w", err)
	}
	return url, nil
}

func recordKey(atURI string) string {
	trimmed := strings.TrimSuffix(atURI, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	return trimmed[idx+1:]
}

// Group lookups panic on unknown names; convert that into an error so a
// misconfigured route never takes down a publish run.
func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("atproto: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("atproto: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("atproto: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("atproto: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
