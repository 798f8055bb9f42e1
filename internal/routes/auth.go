package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"

	"github.com/copperkettle/coffeehouse/internal/auth"
	"github.com/copperkettle/coffeehouse/internal/database"
	"github.com/copperkettle/coffeehouse/internal/views"
)

// AuthRoutes serves registration, login and logout.
type AuthRoutes struct {
	users    *database.UserStore
	sessions *auth.SessionManager
	verifier *auth.Verifier
	views    *views.Renderer
}

func NewAuthRoutes(
	users *database.UserStore,
	sessions *auth.SessionManager,
	verifier *auth.Verifier,
	v *views.Renderer,
) *AuthRoutes {
	return &AuthRoutes{
		users:    users,
		sessions: sessions,
		verifier: verifier,
		views:    v,
	}
}

// Register attaches the auth routes to r. The credential-accepting POSTs
// sit behind a per-IP rate limit.
func (ar *AuthRoutes) Register(r chi.Router) {
	r.Get("/login", ar.LoginPage)
	r.Get("/register", ar.RegisterPage)
	r.Get("/logout", ar.Logout)

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))

		r.Post("/login", ar.Login)
		r.Post("/register", ar.CreateAccount)
	})
}

func (ar *AuthRoutes) LoginPage(w http.ResponseWriter, r *http.Request) {
	ar.views.Render(w, "login", pageData{User: auth.UserFrom(r.Context())})
}

func (ar *AuthRoutes) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ar.views.Render(w, "register", pageData{User: auth.UserFrom(r.Context())})
}

// Login verifies the submitted credentials and starts a session. Any
// failure, including store errors, lands on the same error page.
func (ar *AuthRoutes) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "Login failed")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := ar.verifier.Verify(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrUnknownUser) && !errors.Is(err, auth.ErrBadCredentials) {
			log.Printf("failed to verify credentials: %v", err)
		}

		redirectError(w, r, "Login failed")
		return
	}

	token, err := ar.sessions.Create(r.Context(), auth.Session{UserID: user.UserID})
	if err != nil {
		log.Printf("failed to create session: %v", err)
		redirectError(w, r, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionTTL),
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

// CreateAccount registers a new user. The FindByUsername pre-check is a
// UX shortcut; the unique index on username is what actually prevents
// duplicates, so a lost race still surfaces as "User already exists".
func (ar *AuthRoutes) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "Registration error")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	existing, err := ar.users.FindByUsername(r.Context(), username)
	if err != nil {
		log.Printf("failed to check username: %v", err)
		redirectError(w, r, "Registration error")
		return
	}
	if existing != nil {
		redirectError(w, r, "User already exists")
		return
	}

	user := &database.User{Username: username, Password: password}
	if err := ar.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			redirectError(w, r, "User already exists")
			return
		}

		log.Printf("failed to create user: %v", err)
		redirectError(w, r, "Registration error")
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout clears the cookie and drops the session. Without a session it is
// a no-op; either way the browser goes home.
func (ar *AuthRoutes) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   auth.SessionCookie,
		Path:   "/",
		MaxAge: -1,
	})

	c, err := r.Cookie(auth.SessionCookie)
	if err != nil || c.Value == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := ar.sessions.Delete(r.Context(), c.Value); err != nil {
		log.Printf("failed to delete session: %v", err)
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
