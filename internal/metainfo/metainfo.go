// Package metainfo parses per-article metadata records.
//
// Each article directory carries a metainfo.toml with a single [article]
// section. Parsing is all-or-nothing: a record with any missing or
// ill-shaped required field is rejected whole.
package metainfo

import (
	"math"

	"github.com/BurntSushi/toml"

	"github.com/first-storm/henkaiki/internal/errors"
)

// Metainfo is the parsed metadata descriptor for one article.
//
// Instances are immutable once constructed and shared by pointer across
// the index, cache, and listing paths. Callers must never mutate fields;
// summaries copy string headers only, not the underlying text.
type Metainfo struct {
	ID           int32
	Title        string
	Description  string
	MarkdownPath string
	// Date is encoded as an 8-digit YYYYMMDD integer, e.g. 19481210.
	Date     uint32
	Tags     []string
	Keywords []string
}

// rawRecord mirrors the metainfo.toml layout. Pointer fields distinguish
// a missing key from a zero value.
type rawRecord struct {
	Article *rawArticle `toml:"article"`
}

type rawArticle struct {
	ID           *int64    `toml:"id"`
	Title        *string   `toml:"title"`
	Description  *string   `toml:"description"`
	MarkdownPath *string   `toml:"markdown_path"`
	Date         *int64    `toml:"date"`
	Tags         *[]string `toml:"tags"`
	Keywords     *[]string `toml:"keywords"`
}

// Parse decodes one metadata record.
// Returns a MalformedMetainfo error when the record is structurally
// invalid; a non-string element inside tags or keywords fails the whole
// record.
func Parse(data []byte) (*Metainfo, error) {
	var raw rawRecord
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Newf(errors.ErrCodeMalformedMetainfo, err, "parsing metainfo: %v", err)
	}
	if raw.Article == nil {
		return nil, errors.New(errors.ErrCodeMalformedMetainfo, "missing [article] section", nil)
	}

	a := raw.Article
	switch {
	case a.ID == nil:
		return nil, missingField("id")
	case a.Title == nil:
		return nil, missingField("title")
	case a.Description == nil:
		return nil, missingField("description")
	case a.MarkdownPath == nil:
		return nil, missingField("markdown_path")
	case a.Date == nil:
		return nil, missingField("date")
	case a.Tags == nil:
		return nil, missingField("tags")
	case a.Keywords == nil:
		return nil, missingField("keywords")
	}

	if *a.ID < math.MinInt32 || *a.ID > math.MaxInt32 {
		return nil, errors.Newf(errors.ErrCodeMalformedMetainfo, nil, "'id' out of int32 range: %d", *a.ID)
	}
	if *a.Date < 0 || *a.Date > 99991231 {
		return nil, errors.Newf(errors.ErrCodeMalformedMetainfo, nil, "'date' is not a YYYYMMDD integer: %d", *a.Date)
	}
	if *a.MarkdownPath == "" {
		return nil, errors.New(errors.ErrCodeMalformedMetainfo, "'markdown_path' must not be empty", nil)
	}

	return &Metainfo{
		ID:           int32(*a.ID),
		Title:        *a.Title,
		Description:  *a.Description,
		MarkdownPath: *a.MarkdownPath,
		Date:         uint32(*a.Date),
		Tags:         *a.Tags,
		Keywords:     *a.Keywords,
	}, nil
}

func missingField(name string) *errors.Error {
	return errors.Newf(errors.ErrCodeMalformedMetainfo, nil, "missing or invalid '%s' in metainfo", name).
		WithDetail("field", name)
}
