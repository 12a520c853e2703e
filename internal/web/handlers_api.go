package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/JonMunkholm/catalog/internal/logging"
	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
)

// maxActionBody bounds JSON request bodies on view actions.
const maxActionBody = 16 << 10

// ViewResponse is the JSON form of one product view.
type ViewResponse struct {
	SessionID string             `json:"sessionId,omitempty"`
	State     core.FilterState   `json:"state"`
	Rows      []core.ProductView `json:"rows"`
	Count     int                `json:"count"`
	Message   string             `json:"message,omitempty"`
}

func newViewResponse(id string, state core.FilterState, rows []core.ProductView) ViewResponse {
	resp := ViewResponse{SessionID: id, State: state, Rows: rows, Count: len(rows)}
	if len(rows) == 0 {
		resp.Message = core.NoMatchesMessage
	}
	return resp
}

// CatalogResponse lists the source collections.
type CatalogResponse struct {
	Users      []core.User     `json:"users"`
	Categories []core.Category `json:"categories"`
	Products   []core.Product  `json:"products"`
}

// productQuery is the query string of GET /api/products.
type productQuery struct {
	User       string   `schema:"user"`
	Search     string   `schema:"q"`
	Categories []string `schema:"category"`
	Sort       string   `schema:"sort"`
	Dir        string   `schema:"dir"`
}

// state converts the query to a filter state.
func (q productQuery) state() (core.FilterState, error) {
	state := core.NewFilterState()
	state.SetUser(q.User)
	state.SetSearchTerm(q.Search)
	for _, c := range q.Categories {
		if c != "" && !state.HasCategory(c) {
			state.ToggleCategory(c)
		}
	}

	col, err := core.ParseColumn(q.Sort)
	if err != nil {
		return state, err
	}
	state.Sort = core.SortedBy(col, core.ParseDirection(q.Dir))
	return state, nil
}

// actionRequest is the JSON body of POST /api/view/{action}.
type actionRequest struct {
	User     string `json:"user"`
	Term     string `json:"term"`
	Category string `json:"category"`
	Column   string `json:"column"`
}

// parseSortColumn parses a clicked column. The empty column is rejected.
func parseSortColumn(s string) (core.Column, error) {
	col, err := core.ParseColumn(s)
	if err != nil {
		return col, err
	}
	if col == core.ColumnNone {
		return col, fmt.Errorf("%w: column is required", core.ErrUnknownColumn)
	}
	return col, nil
}

// handleHealth reports liveness with catalog and session counts.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "ok",
		"products": len(s.store.Views()),
		"sessions": s.store.Len(),
	})
}

// handleCatalog returns the users, categories and products as loaded.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.store.Catalog()
	writeJSON(w, CatalogResponse{
		Users:      c.Users(),
		Categories: c.Categories(),
		Products:   c.Products(),
	})
}

// handleProducts runs the pipeline over the query string without touching
// any session. Responses carry an ETag so unchanged results answer 304.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	var q productQuery
	if err := formDecoder.Decode(&q, r.URL.Query()); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errInvalidQuery, err), 0)
		return
	}
	state, err := q.state()
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	m := startTiming(r.Context(), "pipeline", "filter and sort")
	rows := core.Apply(s.store.Views(), state)
	pipelineSeconds.Observe(m.Stop().Seconds())
	if len(rows) == 0 {
		emptyResults.Inc()
	}

	body, err := sonic.Marshal(newViewResponse("", state, rows))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	viewRenders.WithLabelValues("json").Inc()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		logging.FromContext(r.Context()).Debug("write products", "error", err)
	}
}

// handleGetView returns the caller's current view.
func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	s.respondView(w, r, "", nil)
}

// handleViewAction applies one named action to the caller's view.
func (s *Server) handleViewAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if r.ContentLength != 0 {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxActionBody))
		if err != nil {
			s.respondError(w, r, fmt.Errorf("%w: %v", errInvalidQuery, err), 0)
			return
		}
		if len(body) > 0 {
			if err := sonic.Unmarshal(body, &req); err != nil {
				s.respondError(w, r, fmt.Errorf("%w: %v", errInvalidQuery, err), 0)
				return
			}
		}
	}

	action := chi.URLParam(r, "action")
	var fn func(t *core.Table)

	switch action {
	case "user":
		fn = func(t *core.Table) { t.SetUser(req.User) }
	case "search":
		fn = func(t *core.Table) { t.SetSearchTerm(req.Term) }
	case "clear-search":
		fn = (*core.Table).ClearSearch
	case "category":
		if req.Category == "" {
			s.respondError(w, r, fmt.Errorf("%w: category is required", errInvalidQuery), 0)
			return
		}
		fn = func(t *core.Table) { t.ToggleCategory(req.Category) }
	case "reset":
		fn = (*core.Table).ResetFilters
	case "sort":
		col, err := parseSortColumn(req.Column)
		if err != nil {
			s.respondError(w, r, err, 0)
			return
		}
		fn = func(t *core.Table) { t.ClickSortColumn(col) }
	default:
		s.respondError(w, r, fmt.Errorf("%w: unknown action %q", errInvalidQuery, action), 0)
		return
	}

	s.respondView(w, r, action, fn)
}

// respondView optionally mutates the caller's table, then writes the view.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request, action string, fn func(t *core.Table)) {
	id := sessionID(r)

	var resp ViewResponse
	err := s.store.Do(id, func(t *core.Table) error {
		if fn != nil {
			fn(t)
		}
		state, rows := snapshot(r.Context(), t)
		resp = newViewResponse(id, state, rows)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if fn != nil {
		viewMutations.WithLabelValues(action).Inc()
		logging.FromContext(r.Context()).Debug("view updated", "action", action)
	}
	viewRenders.WithLabelValues("json").Inc()
	writeJSON(w, resp)
}

// handleEndView discards the caller's view session, if any, and expires
// the session cookie. Ending an unknown session is not an error.
func (s *Server) handleEndView(w http.ResponseWriter, r *http.Request) {
	if id := s.requestedSessionID(r); id != "" {
		s.store.Delete(id)
		sessionsLive.Set(float64(s.store.Len()))
	}
	s.expireSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
