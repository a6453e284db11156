package httpapi

import (
	"context"
	"net/http"
	"net/url"

	"foodflow-frontend/internal/auth"
	"foodflow-frontend/internal/domain"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

const sessionCookie = "sid"

// withSession guarantees every request carries a session ID, minting a
// cookie for first-time visitors.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = h.Sessions.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionIDKey).(string)
	return sid
}

// resolveAuth returns the session's auth context, running the initial
// check when it has not happened yet. An authenticated context whose
// stored credentials have expired is revalidated first, so guards never
// pass on a profile without a token behind it. When another request is
// mid-check it returns the context still in StateChecking; callers must
// render a loading view and take no navigation action in that case.
func (h *Handler) resolveAuth(r *http.Request) *auth.Context {
	sid := sessionID(r)
	actx := h.Auth.Revalidate(r.Context(), sid)
	if actx.State() == auth.StateUnknown {
		return h.Auth.Check(r.Context(), sid)
	}
	return actx
}

// requireAuth gates a page to authenticated users. Anonymous visitors are
// sent to the login route with a redirect parameter pointing back at the
// original page.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actx := h.resolveAuth(r)
		if actx.State() == auth.StateChecking {
			h.renderLoading(w)
			return
		}
		if !actx.IsAuthenticated() {
			h.redirectToLogin(w, r)
			return
		}
		next(w, r)
	}
}

// requireRole additionally bounces authenticated users of the wrong role
// to their role-appropriate landing page.
func (h *Handler) requireRole(role domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return h.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		actx := h.Auth.Context(sessionID(r))
		user := actx.User()
		if user == nil || user.Role != role {
			if actx.IsRestaurantOwner() {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			} else {
				http.Redirect(w, r, "/restaurants", http.StatusSeeOther)
			}
			return
		}
		next(w, r)
	})
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := auth.LoginRoute + "?redirect=" + url.QueryEscape(r.URL.Path)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
