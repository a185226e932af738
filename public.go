package showcase

import (
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/eringen/showcase/cache"
	"github.com/eringen/showcase/content"
)

const (
	keyCaseStudies = "public:case-studies"
	keyPosts       = "public:blog-posts"
)

// PublicContent serves the lists visible to anonymous visitors through a
// cache. Mutations in the admin call Invalidate so the next read goes to
// the store.
type PublicContent struct {
	store *content.Store
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger

	loads singleflight.Group
	gen   atomic.Uint64 // bumped by Invalidate
}

// NewPublicContent creates a PublicContent backed by the given Store.
func NewPublicContent(s *content.Store, c cache.Cache, ttl time.Duration, log *zap.Logger) *PublicContent {
	if c == nil {
		c = cache.NewNoop()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PublicContent{store: s, cache: c, ttl: ttl, log: log}
}

// cached returns the list under key, loading and storing it on a miss.
// Cache failures are logged and bypassed; store failures are returned.
// A list loaded before an Invalidate is returned to its callers but never
// written back.
func cached[T any](ctx context.Context, p *PublicContent, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	raw, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		p.log.Warn("cache entry unreadable", zap.String("key", key))
	}

	gen := p.gen.Load()
	// Concurrent misses share one load, but never across an invalidation.
	v, err, _ := p.loads.Do(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		// The load outlives the caller that started it.
		ctx := context.WithoutCancel(ctx)
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		p.fill(ctx, key, gen, items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// fill stores items under key unless an Invalidate happened since gen. An
// Invalidate racing with the Set either is seen by the second check or
// deletes the entry itself.
func (p *PublicContent) fill(ctx context.Context, key string, gen uint64, items any) {
	if p.gen.Load() != gen {
		return
	}
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, key, b, p.ttl); err != nil {
		p.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if p.gen.Load() != gen {
		p.log.Debug("dropping stale cache fill", zap.String("key", key))
		if err := p.cache.Delete(ctx, key); err != nil {
			p.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// CaseStudies returns every case study, newest first.
func (p *PublicContent) CaseStudies(ctx context.Context) ([]content.CaseStudy, error) {
	return cached(ctx, p, keyCaseStudies, func(ctx context.Context) ([]content.CaseStudy, error) {
		return p.store.CaseStudies.ListAll(ctx, content.ListOptions{})
	})
}

// Posts returns published blog posts, newest first.
func (p *PublicContent) Posts(ctx context.Context) ([]content.BlogPost, error) {
	return cached(ctx, p, keyPosts, func(ctx context.Context) ([]content.BlogPost, error) {
		return p.store.BlogPosts.ListAll(ctx, content.ListOptions{PublishedOnly: true})
	})
}

// CaseStudy returns one case study, from the cached list when possible.
func (p *PublicContent) CaseStudy(ctx context.Context, id string) (content.CaseStudy, error) {
	if items, err := p.CaseStudies(ctx); err == nil {
		for _, cs := range items {
			if cs.ID == id {
				return cs, nil
			}
		}
	}
	return p.store.CaseStudies.Get(ctx, id)
}

// Post returns one published post. Drafts are NotFound.
func (p *PublicContent) Post(ctx context.Context, id string) (content.BlogPost, error) {
	if posts, err := p.Posts(ctx); err == nil {
		for _, bp := range posts {
			if bp.ID == id {
				return bp, nil
			}
		}
	}
	return p.store.BlogPosts.GetPublished(ctx, id)
}

// Invalidate clears the cached lists so the next read triggers a fresh load.
func (p *PublicContent) Invalidate(ctx context.Context) {
	p.gen.Add(1)
	if err := p.cache.Delete(ctx, keyCaseStudies, keyPosts); err != nil {
		p.log.Warn("cache invalidation failed", zap.Error(err))
	}
}
