package articles

import (
	"strings"

	"github.com/first-storm/henkaiki/internal/paginate"
)

// Search returns the summaries of every article whose title or
// description contains query as a case-sensitive substring, in
// ascending id order.
//
// The scan is linear over the whole index on every call. That is an
// accepted limit for the target collection sizes; there is no inverted
// text index to keep coherent across rebuilds.
func (a *Articles) Search(query string) []ArticleSummary {
	var results []ArticleSummary
	for _, id := range a.index.AllIDs() {
		m, ok := a.index.Lookup(id)
		if !ok {
			continue
		}
		if strings.Contains(m.Title, query) || strings.Contains(m.Description, query) {
			results = append(results, ArticleSummary{
				ID:          m.ID,
				Title:       m.Title,
				Description: m.Description,
				Date:        m.Date,
				Tags:        m.Tags,
				Keywords:    m.Keywords,
			})
		}
	}
	return results
}

// SearchPaginated returns one page of the full search result.
func (a *Articles) SearchPaginated(query string, pageSize, page int) ([]ArticleSummary, error) {
	return paginate.Slice(a.Search(query), pageSize, page)
}

// SearchPageCount returns the number of pages the search result spans.
func (a *Articles) SearchPageCount(query string, pageSize int) int {
	return paginate.PageCount(len(a.Search(query)), pageSize)
}
