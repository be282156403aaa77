package appMiddleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// SessionHeader lets non-browser clients carry their session without cookies.
const SessionHeader = "X-Session-ID"

// Session resolves the caller's session ID from the X-Session-ID header or the session
// cookie, issuing a new ID and cookie when neither holds a valid UUID.
func Session(cookieName string, ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := sessionFromRequest(r, cookieName)
			if !ok {
				sessionID = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID.String(),
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(SessionHeader, sessionID.String())

			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromRequest(r *http.Request, cookieName string) (uuid.UUID, bool) {
	if v := r.Header.Get(SessionHeader); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			return id, true
		}
	}
	if c, err := r.Cookie(cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

// GetSessionIDFromContext returns the session ID stored by Session.
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
