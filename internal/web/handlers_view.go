package web

// HTML handlers for the product view. Every form post mutates the
// session's table and then either renders the panel fragment (HTMX) or
// redirects back to the page (plain form submit).

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/JonMunkholm/catalog/internal/logging"
	"github.com/JonMunkholm/catalog/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

// viewForm carries the fields posted by the filter panel.
type viewForm struct {
	User     string `schema:"user"`
	Query    string `schema:"q"`
	Category string `schema:"category"`
}

func parseViewForm(r *http.Request) (viewForm, error) {
	var f viewForm
	if err := r.ParseForm(); err != nil {
		return f, fmt.Errorf("%w: %v", errInvalidQuery, err)
	}
	if err := formDecoder.Decode(&f, r.PostForm); err != nil {
		return f, fmt.Errorf("%w: %v", errInvalidQuery, err)
	}
	return f, nil
}

// snapshot runs the pipeline for t and records its timing.
func snapshot(ctx context.Context, t *core.Table) (core.FilterState, []core.ProductView) {
	m := startTiming(ctx, "pipeline", "filter and sort")
	rows := t.VisibleRows()
	pipelineSeconds.Observe(m.Stop().Seconds())

	if len(rows) == 0 {
		emptyResults.Inc()
	}
	return t.State(), rows
}

// viewData builds the template input from t.
func viewData(ctx context.Context, t *core.Table) templates.ViewData {
	var data templates.ViewData
	data.State, data.Rows = snapshot(ctx, t)
	data.Users = t.Catalog().Users()
	data.Categories = t.Catalog().Categories()
	return data
}

// handleIndex renders the full page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var data templates.ViewData
	err := s.store.Do(sessionID(r), func(t *core.Table) error {
		data = viewData(r.Context(), t)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	s.renderHTML(w, r, templates.Page(data), "page")
}

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, c templ.Component, format string) {
	m := startTiming(r.Context(), "render", format)
	defer m.Stop()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render view", "format", format, "error", err)
		return
	}
	viewRenders.WithLabelValues(format).Inc()
}

// mutate applies fn to the session's table, then answers with the panel
// fragment for HTMX or a redirect so a browser refresh does not resubmit
// the form.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, action string, fn func(t *core.Table)) {
	htmx := isHTMX(r)

	var data templates.ViewData
	err := s.store.Do(sessionID(r), func(t *core.Table) error {
		fn(t)
		if htmx {
			data = viewData(r.Context(), t)
		}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	viewMutations.WithLabelValues(action).Inc()
	logging.FromContext(r.Context()).Debug("view updated", "action", action)

	if !htmx {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderHTML(w, r, templates.ProductPanel(data), "panel")
}

func (s *Server) handleSelectUser(w http.ResponseWriter, r *http.Request) {
	f, err := parseViewForm(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	s.mutate(w, r, "user", func(t *core.Table) {
		t.SetUser(f.User)
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	f, err := parseViewForm(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	s.mutate(w, r, "search", func(t *core.Table) {
		t.SetSearchTerm(f.Query)
	})
}

func (s *Server) handleClearSearch(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, "clear-search", func(t *core.Table) {
		t.ClearSearch()
	})
}

func (s *Server) handleToggleCategory(w http.ResponseWriter, r *http.Request) {
	f, err := parseViewForm(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if f.Category == "" {
		s.respondError(w, r, fmt.Errorf("%w: category is required", errInvalidQuery), 0)
		return
	}
	s.mutate(w, r, "category", func(t *core.Table) {
		t.ToggleCategory(f.Category)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, "reset", func(t *core.Table) {
		t.ResetFilters()
	})
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	col, err := parseSortColumn(chi.URLParam(r, "column"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	s.mutate(w, r, "sort", func(t *core.Table) {
		t.ClickSortColumn(col)
	})
}
