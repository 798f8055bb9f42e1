package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/copperkettle/coffeehouse/internal/database"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	sessionKey   contextKey = "session"
	userKey      contextKey = "user"
)

// Gate resolves session cookies into users.
type Gate struct {
	sessions *SessionManager
	users    UserSource
}

func NewGate(sessions *SessionManager, users UserSource) *Gate {
	return &Gate{sessions: sessions, users: users}
}

// WithUser resolves the session cookie, if any, and attaches the session
// and the freshly fetched user record to the request context. Requests
// without a valid session pass through anonymously; every view can then
// render login state. Mount it once on the root router.
func (g *Gate) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := c.Value

		session, err := g.sessions.Get(r.Context(), token)
		if err != nil {
			log.Printf("failed to get session: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if session == nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := g.users.FindByID(r.Context(), session.UserID)
		if err != nil {
			log.Printf("failed to load user for session: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if user == nil {
			// The account behind the session is gone; drop the session so
			// the token stops resolving.
			g.sessions.Delete(r.Context(), token)
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, sessionIDKey, token)
		ctx = context.WithValue(ctx, sessionKey, session)
		ctx = context.WithValue(ctx, userKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser guards a route group: requests that did not resolve to a
// user are redirected to the login page with no further detail. It relies
// on WithUser having run earlier in the chain.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user for the request, or nil.
func UserFrom(ctx context.Context) *database.User {
	user, _ := ctx.Value(userKey).(*database.User)
	return user
}

// SessionFrom returns the resolved session for the request, or nil.
func SessionFrom(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionKey).(*Session)
	return session
}

// SessionIDFrom returns the token the request authenticated with.
func SessionIDFrom(ctx context.Context) string {
	token, _ := ctx.Value(sessionIDKey).(string)
	return token
}
