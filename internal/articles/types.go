package articles

// Article is a fully loaded article with rendered content.
//
// Values are immutable once built and cheap to copy: the string and
// slice fields share their backing storage with the index's descriptor.
type Article struct {
	ID          int32    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Date        uint32   `json:"date"`
	Tags        []string `json:"tags"`
	Keywords    []string `json:"keywords"`
}

// Summary returns the article's listing form, without content.
func (a Article) Summary() ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Tags:        a.Tags,
		Keywords:    a.Keywords,
	}
}

// ArticleSummary is an article without its content, used for listing
// and search results.
type ArticleSummary struct {
	ID          int32    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        uint32   `json:"date"`
	Tags        []string `json:"tags"`
	Keywords    []string `json:"keywords"`
}

// CachedStatus reports whether a fetched article came from the cache.
// Observability only, never used for correctness.
type CachedStatus int

const (
	// NotCached means the article was loaded from the filesystem.
	NotCached CachedStatus = iota
	// Cached means the article came from the recency cache.
	Cached
)

// String implements fmt.Stringer.
func (s CachedStatus) String() string {
	if s == Cached {
		return "cached"
	}
	return "not_cached"
}
