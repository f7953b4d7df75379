package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/first-storm/henkaiki/internal/articles"
)

func writeArticle(t *testing.T, root string, id int32, title, description string, tags ...string) {
	t.Helper()
	dir := filepath.Join(root, fmt.Sprintf("%d", id))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	tagsToml := ""
	for i, tag := range tags {
		if i > 0 {
			tagsToml += ", "
		}
		tagsToml += fmt.Sprintf("%q", tag)
	}
	record := fmt.Sprintf(`[article]
id = %d
title = %q
description = %q
markdown_path = "body.md"
date = 20240101
tags = [%s]
keywords = []
`, id, title, description, tagsToml)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metainfo.toml"), []byte(record), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "body.md"), []byte("body "+title), 0o644))
}

func newTestServer(t *testing.T, root string, opts articles.Options) *Server {
	t.Helper()
	engine, err := articles.New(root, opts)
	require.NoError(t, err)
	return NewServer(Config{Addr: "127.0.0.1:0", DefaultPageSize: 10, Version: "test"}, engine)
}

func doRequest(t *testing.T, s *Server, method, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func decodeData[T any](t *testing.T, resp Response) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, t.TempDir(), articles.Options{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestListArticles(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, 2, "Two", "d2")
	writeArticle(t, root, 1, "One", "d1")
	s := newTestServer(t, root, articles.Options{})

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	summaries := decodeData[[]articles.ArticleSummary](t, resp)
	require.Len(t, summaries, 2)
	assert.Equal(t, int32(1), summaries[0].ID)
	assert.Equal(t, int32(2), summaries[1].ID)
}

func TestListArticlesPaginated(t *testing.T) {
	root := t.TempDir()
	for id := int32(1); id <= 7; id++ {
		writeArticle(t, root, id, fmt.Sprintf("A%d", id), "d")
	}
	s := newTestServer(t, root, articles.Options{})

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles?limit=3&page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	summaries := decodeData[[]articles.ArticleSummary](t, resp)
	require.Len(t, summaries, 1)
	assert.Equal(t, int32(7), summaries[0].ID)

	rec, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles?limit=3&page=3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/v1/articles?limit=x&page=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArticlePages(t *testing.T) {
	root := t.TempDir()
	for id := int32(1); id <= 7; id++ {
		writeArticle(t, root, id, fmt.Sprintf("A%d", id), "d")
	}
	s := newTestServer(t, root, articles.Options{})

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/pages?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeData[int](t, resp))

	// Default page size of 10.
	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles/pages")
	assert.Equal(t, 1, decodeData[int](t, resp))
}

func TestGetArticle(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, 5, "Five", "d5")
	s := newTestServer(t, root, articles.Options{})

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "not_cached", rec.Header().Get("X-Henkaiki-Cache"))

	article := decodeData[articles.Article](t, resp)
	assert.Equal(t, int32(5), article.ID)
	assert.Equal(t, "body Five", article.Content)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/v1/articles/5")
	assert.Equal(t, "cached", rec.Header().Get("X-Henkaiki-Cache"))
}

func TestGetArticleErrors(t *testing.T) {
	s := newTestServer(t, t.TempDir(), articles.Options{})

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/v1/articles/notanumber")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshIndexAndArticle(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, 1, "One", "d")
	s := newTestServer(t, root, articles.Options{})

	// New article appears only after an index refresh.
	writeArticle(t, root, 2, "Two", "d")
	rec, _ := doRequest(t, s, http.MethodGet, "/api/v1/articles/2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp := doRequest(t, s, http.MethodPost, "/api/v1/articles/index/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/v1/articles/2")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = doRequest(t, s, http.MethodPost, "/api/v1/articles/1/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, _ = doRequest(t, s, http.MethodPost, "/api/v1/articles/99/refresh")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCacheEndpoints(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, 1, "One", "d")
	s := newTestServer(t, root, articles.Options{RecordCacheStats: true})

	doRequest(t, s, http.MethodGet, "/api/v1/articles/1") // miss
	doRequest(t, s, http.MethodGet, "/api/v1/articles/1") // hit

	_, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/cache/stats")
	stats := decodeData[map[string]float64](t, resp)
	assert.Equal(t, float64(1), stats["cache_hit"])
	assert.Equal(t, float64(1), stats["cache_miss"])
	assert.InDelta(t, 0.5, stats["hit_rate"], 1e-9)

	rec, _ := doRequest(t, s, http.MethodPost, "/api/v1/articles/cache/stats/reset")
	assert.Equal(t, http.StatusOK, rec.Code)

	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles/cache/stats")
	stats = decodeData[map[string]float64](t, resp)
	assert.Zero(t, stats["cache_hit"])

	rec, resp = doRequest(t, s, http.MethodDelete, "/api/v1/articles/cache")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestListByTag(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, 1, "One", "d", "go")
	writeArticle(t, root, 2, "Two", "d", "go", "web")
	writeArticle(t, root, 3, "Three", "d", "web")
	s := newTestServer(t, root, articles.Options{})

	_, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/tags/go")
	summaries := decodeData[[]articles.ArticleSummary](t, resp)
	require.Len(t, summaries, 2)
	assert.Equal(t, int32(1), summaries[0].ID)

	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles/tags/go/pages?limit=1")
	assert.Equal(t, 2, decodeData[int](t, resp))

	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles/tags/go?limit=1&page=1")
	summaries = decodeData[[]articles.ArticleSummary](t, resp)
	require.Len(t, summaries, 1)
	assert.Equal(t, int32(2), summaries[0].ID)

	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles/tags/none")
	assert.Empty(t, decodeData[[]articles.ArticleSummary](t, resp))
}

func TestSearchEndpoint(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, 1, "Human rights", "history")
	writeArticle(t, root, 2, "Caching", "rights and pages")
	writeArticle(t, root, 3, "Other", "unrelated")
	s := newTestServer(t, root, articles.Options{})

	_, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/search?q=rights")
	summaries := decodeData[[]articles.ArticleSummary](t, resp)
	require.Len(t, summaries, 2)
	assert.Equal(t, int32(1), summaries[0].ID)
	assert.Equal(t, int32(2), summaries[1].ID)

	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles/search?q=rights&limit=1&page=1")
	summaries = decodeData[[]articles.ArticleSummary](t, resp)
	require.Len(t, summaries, 1)
	assert.Equal(t, int32(2), summaries[0].ID)

	_, resp = doRequest(t, s, http.MethodGet, "/api/v1/articles/search/pages?q=rights&limit=1")
	assert.Equal(t, 2, decodeData[int](t, resp))

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/search?q=zzz-no-match")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData[[]articles.ArticleSummary](t, resp))
}

func TestSampleArticleEndpoint(t *testing.T) {
	s := newTestServer(t, t.TempDir(), articles.Options{EnableSample: true})

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/articles/0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "not_cached", rec.Header().Get("X-Henkaiki-Cache"))

	article := decodeData[articles.Article](t, resp)
	assert.Equal(t, "Universal Declaration of Human Rights", article.Title)
}
