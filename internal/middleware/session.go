package middleware

import (
	"net/http"

	"github.com/google/uuid"

	reqctx "warehouse/loadmap/internal/context"
)

// SessionCookie names the cookie that ties a browser to its editor session.
const SessionCookie = "loadmap_session"

// EditorSessionMiddleware ensures every browser carries a session cookie and
// stores its value in the request context.
func EditorSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(reqctx.SetSessionID(r.Context(), sessionID)))
	})
}
