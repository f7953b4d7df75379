// Package store discovers and loads articles from the source directory
// tree. Layout: one immediate subdirectory per article, named by its
// numeric id, containing metainfo.toml plus the body file the record
// names.
package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/first-storm/henkaiki/internal/errors"
	"github.com/first-storm/henkaiki/internal/metainfo"
)

// MetainfoFilename is the per-article metadata file name.
const MetainfoFilename = "metainfo.toml"

// RenderFunc transforms a raw article body into its final content form.
type RenderFunc func(string) string

// Store loads articles from a root directory.
type Store struct {
	rootDir string
	render  RenderFunc
}

// New creates a store over rootDir. A nil render function means bodies
// are served verbatim.
func New(rootDir string, render RenderFunc) *Store {
	if render == nil {
		render = func(s string) string { return s }
	}
	return &Store{rootDir: rootDir, render: render}
}

// RootDir returns the configured source directory.
func (s *Store) RootDir() string {
	return s.rootDir
}

// Scan enumerates the immediate subdirectories of the root and parses
// each candidate's metadata. A subdirectory counts only if its name
// parses as an int32 and it contains a parsable metainfo.toml whose id
// agrees with the directory name; everything else is skipped with a
// logged warning. A single bad article never aborts the scan.
//
// Failure to read the root directory itself is fatal to the scan and
// surfaced as SourceDirUnreadable.
func (s *Store) Scan() ([]*metainfo.Metainfo, error) {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return nil, errors.Newf(errors.ErrCodeSourceDirUnreadable, err,
			"reading articles directory %s: %v", s.rootDir, err)
	}

	var (
		mu          sync.Mutex
		descriptors []*metainfo.Metainfo
	)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, entry := range entries {
		g.Go(func() error {
			m, ok := s.scanEntry(entry)
			if ok {
				mu.Lock()
				descriptors = append(descriptors, m)
				mu.Unlock()
			}
			return nil
		})
	}

	// Per-entry failures are recovered locally, so the group cannot fail.
	_ = g.Wait()

	slog.Info("article scan complete",
		slog.String("root", s.rootDir),
		slog.Int("articles", len(descriptors)))
	return descriptors, nil
}

// scanEntry validates and parses one directory entry.
// Returns ok=false for every skippable defect.
func (s *Store) scanEntry(entry os.DirEntry) (*metainfo.Metainfo, bool) {
	name := entry.Name()

	if !entry.IsDir() {
		return nil, false
	}

	id64, err := strconv.ParseInt(name, 10, 32)
	if err != nil {
		slog.Warn("skipping non-numeric article directory", slog.String("name", name))
		return nil, false
	}
	dirID := int32(id64)

	metainfoPath := filepath.Join(s.rootDir, name, MetainfoFilename)
	data, err := os.ReadFile(metainfoPath)
	if err != nil {
		slog.Warn("skipping article without readable metainfo",
			slog.Int("id", int(dirID)),
			slog.String("path", metainfoPath),
			slog.String("error", err.Error()))
		return nil, false
	}

	m, err := metainfo.Parse(data)
	if err != nil {
		slog.Warn("skipping article with malformed metainfo",
			slog.Int("id", int(dirID)),
			slog.String("error", err.Error()))
		return nil, false
	}

	if m.ID != dirID {
		slog.Warn("skipping article with id mismatch",
			slog.Int("directory_id", int(dirID)),
			slog.Int("metainfo_id", int(m.ID)))
		return nil, false
	}

	return m, true
}

// LoadMetainfo reads and parses the metadata record for a single id,
// bypassing any index. Unlike Scan, parse failures are surfaced.
func (s *Store) LoadMetainfo(id int32) (*metainfo.Metainfo, error) {
	dir := s.articleDir(id)
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Newf(errors.ErrCodeArticleDirMissing, err,
			"article directory missing for id %d", id)
	}

	data, err := os.ReadFile(filepath.Join(dir, MetainfoFilename))
	if err != nil {
		return nil, errors.Newf(errors.ErrCodeMalformedMetainfo, err,
			"metainfo unreadable for id %d", id)
	}

	m, err := metainfo.Parse(data)
	if err != nil {
		return nil, err
	}
	if m.ID != id {
		return nil, errors.Newf(errors.ErrCodeMalformedMetainfo, nil,
			"metainfo id %d disagrees with directory id %d", m.ID, id)
	}
	return m, nil
}

// LoadBody reads the body file named by the descriptor and applies the
// render function. Fails with ArticleDirMissing when the article's
// directory vanished since indexing, and with MarkdownMissing when the
// body file is absent.
func (s *Store) LoadBody(m *metainfo.Metainfo) (string, error) {
	dir := s.articleDir(m.ID)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrCodeArticleDirMissing, err,
			"article directory missing for id %d", m.ID)
	}

	// The body path comes from the metadata record; confine it to the
	// article's own directory.
	if !filepath.IsLocal(m.MarkdownPath) {
		return "", errors.Newf(errors.ErrCodeMarkdownMissing, nil,
			"body path escapes article directory for id %d: %s", m.ID, m.MarkdownPath)
	}

	bodyPath := filepath.Join(dir, m.MarkdownPath)
	data, err := os.ReadFile(bodyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrCodeMarkdownMissing, err,
				"body file missing for id %d: %s", m.ID, bodyPath)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err)
	}

	return s.render(string(data)), nil
}

func (s *Store) articleDir(id int32) string {
	return filepath.Join(s.rootDir, strconv.FormatInt(int64(id), 10))
}
