package articles

import (
	_ "embed"

	"github.com/first-storm/henkaiki/internal/metainfo"
	"github.com/first-storm/henkaiki/internal/store"
)

// SampleArticleID is the reserved id for the built-in sample article.
// It is injected purely in memory and never read from disk.
const SampleArticleID int32 = 0

//go:embed udhr.md
var sampleBody string

var sampleDescriptor = &metainfo.Metainfo{
	ID:    SampleArticleID,
	Title: "Universal Declaration of Human Rights",
	Description: "The Universal Declaration of Human Rights is a seminal document " +
		"adopted by the United Nations General Assembly on December 10, 1948. " +
		"This article provides a brief overview of its historical significance, " +
		"outlining its role in establishing a universal framework for protecting " +
		"fundamental human rights and freedoms worldwide.",
	MarkdownPath: "udhr.md",
	Date:         19481210,
	Tags:         []string{"Politics", "History"},
	Keywords:     []string{"human rights", "united nations"},
}

// newSampleArticle builds the in-memory sample article, rendering the
// embedded body with the configured render function.
func newSampleArticle(render store.RenderFunc) *Article {
	content := sampleBody
	if render != nil {
		content = render(sampleBody)
	}
	return &Article{
		ID:          sampleDescriptor.ID,
		Title:       sampleDescriptor.Title,
		Description: sampleDescriptor.Description,
		Content:     content,
		Date:        sampleDescriptor.Date,
		Tags:        sampleDescriptor.Tags,
		Keywords:    sampleDescriptor.Keywords,
	}
}
