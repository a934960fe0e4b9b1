package handler

import (
	"context"
	"net/http"

	"github.com/Allknowingroger/Image-Fusion/internal/session"
)

// SessionCookie names the HttpOnly cookie tying a browser to its state.
const SessionCookie = "fusion_session"

type ctxKey int

const sessionKey ctxKey = iota

// WithSession resolves the caller's session from the cookie, creating one on
// first contact, and stores it on the request context.
func (h *FusionHandler) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *session.Session
		if c, err := r.Cookie(SessionCookie); err == nil {
			if s, ok := h.sessions.Get(c.Value); ok {
				sess = s
			}
		}
		if sess == nil {
			sess = h.sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *FusionHandler) sessionOr500(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, ok := r.Context().Value(sessionKey).(*session.Session)
	if !ok {
		writeError(w, http.StatusInternalServerError, "no session on request")
		return nil
	}
	return sess
}
