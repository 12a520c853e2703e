package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/catalog/internal/core"
	mw "github.com/JonMunkholm/catalog/internal/web/middleware"
)

// SessionHeader lets API clients carry a view session without cookies.
const SessionHeader = mw.SessionHeader

// WithRequestMetadata adds the client IP, without its port, to context for logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return core.ContextWithIPAddress(ctx, clientIP(r))
}

// requestedSessionID returns the id the caller sent, header first, then cookie.
func (s *Server) requestedSessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// expireSessionCookie tells the browser to drop the session cookie.
func (s *Server) expireSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// withSession resolves the caller's view session, creating one when the
// cookie or header is missing or stale, and stores its id in the context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, created := s.store.Resolve(s.requestedSessionID(r))
		if created {
			sessionsLive.Set(float64(s.store.Len()))
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(s.cfg.Session.TTL.Seconds()),
				HttpOnly: true,
				Secure:   s.cfg.Session.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(SessionHeader, id)

		ctx := WithRequestMetadata(r.Context(), r)
		ctx = core.ContextWithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID returns the id stored by withSession.
func sessionID(r *http.Request) string {
	return core.GetSessionIDFromContext(r.Context())
}
