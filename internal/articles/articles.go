// Package articles composes the store, index, recency cache, and
// paginator into the engine consumed by the API layer.
//
// Every exported operation is safe to call from arbitrarily many
// goroutines. The cache and index are independently synchronized and no
// lock is ever held across filesystem I/O: two concurrent misses for the
// same id may both load from disk, with one Put winning.
package articles

import (
	"log/slog"

	"github.com/first-storm/henkaiki/internal/cache"
	"github.com/first-storm/henkaiki/internal/errors"
	"github.com/first-storm/henkaiki/internal/index"
	"github.com/first-storm/henkaiki/internal/metainfo"
	"github.com/first-storm/henkaiki/internal/paginate"
	"github.com/first-storm/henkaiki/internal/store"
)

// Options configures an Articles engine.
type Options struct {
	// CacheCapacity is the recency cache size; non-positive falls back
	// to cache.DefaultCapacity.
	CacheCapacity int
	// RecordCacheStats enables hit/miss counters.
	RecordCacheStats bool
	// EnableSample injects the built-in sample article under id 0.
	EnableSample bool
	// Render is applied to each loaded body. Nil means verbatim.
	Render store.RenderFunc
}

// Articles is the engine facade over one source directory.
type Articles struct {
	store  *store.Store
	index  *index.Index
	cache  *cache.Cache[Article]
	sample *Article // nil when the sample article is disabled
}

// New creates the engine and performs the initial index load. An initial
// scan failure is logged but not fatal: the engine starts with an empty
// index and a later RefreshIndex can recover.
func New(rootDir string, opts Options) (*Articles, error) {
	c, err := cache.New[Article](opts.CacheCapacity, opts.RecordCacheStats)
	if err != nil {
		return nil, err
	}

	a := &Articles{
		store: store.New(rootDir, opts.Render),
		index: index.New(),
		cache: c,
	}
	if opts.EnableSample {
		a.sample = newSampleArticle(opts.Render)
	}

	slog.Info("articles engine initialized",
		slog.String("source_dir", rootDir),
		slog.Int("cache_capacity", c.Capacity()),
		slog.Bool("sample_article", a.sample != nil))

	if err := a.RefreshIndex(); err != nil {
		slog.Error("initial index load failed", slog.String("error", err.Error()))
	}
	return a, nil
}

// RefreshIndex rescans the source directory and atomically replaces the
// index. On scan failure the index keeps its previous contents.
//
// The cache is deliberately NOT cleared: stale bodies may persist until
// evicted, individually refreshed, or ClearCache is called.
func (a *Articles) RefreshIndex() error {
	descriptors, err := a.store.Scan()
	if err != nil {
		return err
	}

	if a.sample != nil {
		descriptors = append(descriptors, sampleDescriptor)
	}

	a.index.Rebuild(descriptors)
	slog.Info("article index rebuilt", slog.Int("entries", a.index.Len()))
	return nil
}

// GetArticle returns the article for id, from the cache when possible.
// The reserved sample id short-circuits the cache and the filesystem
// entirely and is always reported NotCached.
func (a *Articles) GetArticle(id int32) (Article, CachedStatus, error) {
	if id == SampleArticleID && a.sample != nil {
		return *a.sample, NotCached, nil
	}

	if article, ok := a.cache.Get(id); ok {
		slog.Debug("article served from cache", slog.Int("id", int(id)))
		return article, Cached, nil
	}

	m, ok := a.index.Lookup(id)
	if !ok {
		return Article{}, NotCached, errors.NotFound(id)
	}

	// Cache and index locks are released here; the load hits the
	// filesystem unguarded.
	article, err := a.loadArticle(m)
	if err != nil {
		return Article{}, NotCached, err
	}

	a.cache.Put(id, article)
	slog.Debug("article loaded into cache", slog.Int("id", int(id)))
	return article, NotCached, nil
}

// RefreshArticle reloads id from the filesystem, bypassing the cache
// read, and overwrites the cache entry. This is the only targeted
// single-item invalidation path. Metadata is re-read from disk, so a
// malformed record surfaces here rather than being skipped.
func (a *Articles) RefreshArticle(id int32) (Article, error) {
	if id == SampleArticleID && a.sample != nil {
		return *a.sample, nil
	}

	if _, ok := a.index.Lookup(id); !ok {
		return Article{}, errors.NotFound(id)
	}

	m, err := a.store.LoadMetainfo(id)
	if err != nil {
		return Article{}, err
	}

	article, err := a.loadArticle(m)
	if err != nil {
		return Article{}, err
	}

	a.cache.Put(id, article)
	slog.Info("article refreshed in cache", slog.Int("id", int(id)))
	return article, nil
}

// ClearCache empties the recency cache. Always succeeds.
func (a *Articles) ClearCache() {
	a.cache.Clear()
	slog.Info("article cache cleared")
}

// CacheStats returns the hit/miss counters.
func (a *Articles) CacheStats() cache.Stats {
	return a.cache.Stats()
}

// ResetCacheStats zeroes the hit/miss counters.
func (a *Articles) ResetCacheStats() {
	a.cache.ResetStats()
}

// ListSummaries returns every article's summary in ascending id order.
func (a *Articles) ListSummaries() []ArticleSummary {
	return a.summariesFor(a.index.AllIDs())
}

// ListSummariesPaginated returns one page of summaries.
func (a *Articles) ListSummariesPaginated(pageSize, page int) ([]ArticleSummary, error) {
	ids, err := paginate.Slice(a.index.AllIDs(), pageSize, page)
	if err != nil {
		return nil, err
	}
	return a.summariesFor(ids), nil
}

// PageCount returns the number of summary pages for the given page size.
func (a *Articles) PageCount(pageSize int) int {
	return paginate.PageCount(len(a.index.AllIDs()), pageSize)
}

// ListSummariesByTag returns the summaries of every article carrying
// tag, ascending by id. An unknown tag yields an empty list.
func (a *Articles) ListSummariesByTag(tag string) []ArticleSummary {
	return a.summariesFor(a.index.IDsForTag(tag))
}

// ListSummariesByTagPaginated returns one page of a tag's summaries.
func (a *Articles) ListSummariesByTagPaginated(tag string, pageSize, page int) ([]ArticleSummary, error) {
	ids, err := paginate.Slice(a.index.IDsForTag(tag), pageSize, page)
	if err != nil {
		return nil, err
	}
	return a.summariesFor(ids), nil
}

// PageCountByTag returns the number of pages for a tag's summaries.
func (a *Articles) PageCountByTag(tag string, pageSize int) int {
	return paginate.PageCount(len(a.index.IDsForTag(tag)), pageSize)
}

// loadArticle combines a descriptor with its freshly loaded body.
func (a *Articles) loadArticle(m *metainfo.Metainfo) (Article, error) {
	content, err := a.store.LoadBody(m)
	if err != nil {
		return Article{}, err
	}
	return Article{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Content:     content,
		Date:        m.Date,
		Tags:        m.Tags,
		Keywords:    m.Keywords,
	}, nil
}

// summariesFor builds summaries for ids against the current index
// generation. Descriptor fields are shared, never copied.
func (a *Articles) summariesFor(ids []int32) []ArticleSummary {
	summaries := make([]ArticleSummary, 0, len(ids))
	for _, id := range ids {
		m, ok := a.index.Lookup(id)
		if !ok {
			// A rebuild was published between the id read and the
			// lookup; the new generation simply lacks this id.
			continue
		}
		summaries = append(summaries, ArticleSummary{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Date:        m.Date,
			Tags:        m.Tags,
			Keywords:    m.Keywords,
		})
	}
	return summaries
}
