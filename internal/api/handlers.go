package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

// pagination extracts the optional limit/page query pair.
// ok reports whether both were supplied.
func pagination(r *http.Request) (limit, page int, ok bool, err error) {
	q := r.URL.Query()
	limitStr, pageStr := q.Get("limit"), q.Get("page")
	if limitStr == "" || pageStr == "" {
		return 0, 0, false, nil
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil {
		return 0, 0, false, err
	}
	page, err = strconv.Atoi(pageStr)
	if err != nil {
		return 0, 0, false, err
	}
	return limit, page, true, nil
}

// limitOrDefault returns the limit query parameter or the configured
// default page size.
func (s *Server) limitOrDefault(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return s.defaultPageSize, nil
	}
	return strconv.Atoi(limitStr)
}

func articleID(r *http.Request) (int32, bool) {
	id64, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(id64), true
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	limit, page, paginated, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	if !paginated {
		writeData(w, s.engine.ListSummaries())
		return
	}

	summaries, err := s.engine.ListSummariesPaginated(limit, page)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, summaries)
}

func (s *Server) handleArticlePages(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitOrDefault(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}
	writeData(w, s.engine.PageCount(limit))
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, status, err := s.engine.GetArticle(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("X-Henkaiki-Cache", status.String())
	writeData(w, article)
}

func (s *Server) handleRefreshArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if _, err := s.engine.RefreshArticle(id); err != nil {
		writeEngineError(w, err)
		return
	}
	writeMessage(w, "article refreshed")
}

func (s *Server) handleRefreshIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.RefreshIndex(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeMessage(w, "index refreshed")
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.engine.ClearCache()
	writeMessage(w, "cache cleared")
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, s.engine.CacheStats())
}

func (s *Server) handleResetCacheStats(w http.ResponseWriter, r *http.Request) {
	s.engine.ResetCacheStats()
	writeMessage(w, "cache statistics have been reset")
}

func (s *Server) handleListByTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")

	limit, page, paginated, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	if !paginated {
		writeData(w, s.engine.ListSummariesByTag(tag))
		return
	}

	summaries, err := s.engine.ListSummariesByTagPaginated(tag, limit, page)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, summaries)
}

func (s *Server) handleTagPages(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitOrDefault(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}
	writeData(w, s.engine.PageCountByTag(r.PathValue("tag"), limit))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit, page, paginated, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	if !paginated {
		writeData(w, s.engine.Search(query))
		return
	}

	summaries, err := s.engine.SearchPaginated(query, limit, page)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, summaries)
}

func (s *Server) handleSearchPages(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitOrDefault(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}
	writeData(w, s.engine.SearchPageCount(r.URL.Query().Get("q"), limit))
}
