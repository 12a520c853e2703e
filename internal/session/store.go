// Package session keeps one product table view per browser session.
//
// Each session owns its own core.Table, so filter and sort state never leak
// between viewers. Calls against a session are serialised: a mutation runs
// to completion before the next request for the same session is handled.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/google/uuid"
)

// Defaults applied when Options leave a field zero.
const (
	DefaultTTL         = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// Options configures a Store.
type Options struct {
	TTL         time.Duration // Idle time before a session expires
	MaxSessions int           // Oldest idle session is evicted beyond this
}

// Store maps session ids to their table views.
type Store struct {
	catalog *core.Catalog
	views   []core.ProductView // Joined once, shared read-only by every table

	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu       sync.Mutex // Serialises access to table
	table    *core.Table
	lastSeen time.Time
}

// NewStore joins the catalog once and returns an empty store.
// Returns the join error if the catalog has broken references.
func NewStore(catalog *core.Catalog, opts Options) (*Store, error) {
	views, err := catalog.Views()
	if err != nil {
		return nil, fmt.Errorf("join catalog: %w", err)
	}

	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}

	return &Store{
		catalog:     catalog,
		views:       views,
		ttl:         opts.TTL,
		maxSessions: opts.MaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*entry),
	}, nil
}

// Catalog returns the catalog shared by all sessions.
func (s *Store) Catalog() *core.Catalog {
	return s.catalog
}

// Views returns the joined rows shared by every session. Callers must not modify them.
func (s *Store) Views() []core.ProductView {
	return s.views
}

// Create starts a new session with default filter state and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.sessions[id] = &entry{
		table:    core.NewTableFromViews(s.catalog, s.views),
		lastSeen: now,
	}
	return id
}

// Resolve returns id if it names a live session, otherwise a new session id.
// The second result reports whether a session was created.
func (s *Store) Resolve(id string) (string, bool) {
	if s.exists(id) {
		return id, false
	}
	return s.Create(), true
}

// Do runs fn with exclusive access to the session's table.
// Returns ErrSessionNotFound if the id is unknown or expired.
func (s *Store) Do(id string, fn func(t *core.Table) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return fn(e.table)
}

// Delete ends a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle longer than the TTL and returns how many.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired view sessions", "removed", n, "remaining", s.Len())
			}
		}
	}
}

func (s *Store) exists(id string) bool {
	_, err := s.lookup(id)
	return err == nil
}

// lookup finds a live session and refreshes its idle timer.
func (s *Store) lookup(id string) (*entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed id", core.ErrSessionNotFound)
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, fmt.Errorf("%w: expired", core.ErrSessionNotFound)
	}
	e.lastSeen = now
	return e, nil
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
