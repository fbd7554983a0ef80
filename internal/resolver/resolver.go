// Package resolver maps a post to the concrete binary assets behind it. One
// resolver per known media host; new hosts are added by registration, not by
// editing a branch chain.
package resolver

import (
	"context"

	"github.com/gianmaria/reddit-image-downloader/internal/domain"
	"github.com/gianmaria/reddit-image-downloader/internal/fetch"
	"github.com/gianmaria/reddit-image-downloader/internal/media"
	"github.com/gianmaria/reddit-image-downloader/internal/reddit"
)

// Resolver turns one post into zero or more downloadable assets. Resolvers
// never write to disk.
type Resolver interface {
	Resolve(ctx context.Context, post *reddit.Post) ([]domain.Asset, error)
}

// Registry selects the resolver for a post. A URL with a recognizable file
// extension is always resolved directly, taking priority over the
// domain-specific resolvers.
type Registry struct {
	direct Resolver
	byHost map[string]Resolver
}

// RegistryConfig carries what the host resolvers need.
type RegistryConfig struct {
	// ImgurClientID authorizes imgur gallery API calls. May be empty; imgur
	// posts then degrade to failures.
	ImgurClientID string
	// ImgurBaseURL and GfycatBaseURL override the API hosts in tests.
	ImgurBaseURL  string
	GfycatBaseURL string
}

// NewRegistry wires the default host resolvers over the shared HTTP client.
func NewRegistry(client *fetch.Client, cfg RegistryConfig) *Registry {
	r := &Registry{
		direct: &directResolver{},
		byHost: make(map[string]Resolver),
	}
	r.Register("imgur.com", newImgurResolver(client, cfg.ImgurClientID, cfg.ImgurBaseURL))
	r.Register("gfycat.com", newGfycatResolver(client, cfg.GfycatBaseURL))
	r.Register("v.redd.it", &vredditResolver{})
	return r
}

// Register maps a post domain to a resolver, replacing any previous one.
func (r *Registry) Register(host string, res Resolver) {
	r.byHost[host] = res
}

// Lookup returns the resolver responsible for post, or nil when the domain is
// unknown and the URL has no inferable extension (the Unable class).
func (r *Registry) Lookup(post *reddit.Post) Resolver {
	if media.ExtensionFromURL(post.URL) != "" {
		return r.direct
	}
	if res, ok := r.byHost[post.Domain]; ok {
		return res
	}
	return nil
}
