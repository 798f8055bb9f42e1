package routes

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/copperkettle/coffeehouse/internal/auth"
	"github.com/copperkettle/coffeehouse/internal/database"
	"github.com/copperkettle/coffeehouse/internal/upload"
	"github.com/copperkettle/coffeehouse/internal/views"
)

var userColumns = []string{"id", "user_id", "username", "password", "email", "avatar", "avatar_url"}

// testEnv wires the full router against sqlmock and miniredis.
type testEnv struct {
	mock       sqlmock.Sqlmock
	sessions   *auth.SessionManager
	router     chi.Router
	uploadsDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	users := database.NewUserStore(gdb)
	sessions := auth.NewSessionManager(client)
	verifier := auth.NewVerifier(users)
	gate := auth.NewGate(sessions, users)

	uploadsDir := t.TempDir()
	uploads, err := upload.NewStore(uploadsDir)
	if err != nil {
		t.Fatalf("upload.NewStore: %v", err)
	}

	renderer, err := views.New(writeTemplates(t))
	if err != nil {
		t.Fatalf("views.New: %v", err)
	}

	r := chi.NewRouter()
	r.Use(gate.WithUser)
	NewAuthRoutes(users, sessions, verifier, renderer).Register(r)
	NewPageRoutes(renderer).Register(r)
	NewProfileRoutes(users, uploads, renderer).Register(r)

	return &testEnv{
		mock:       mock,
		sessions:   sessions,
		router:     r,
		uploadsDir: uploadsDir,
	}
}

// writeTemplates puts a minimal template per page into a temp dir.
func writeTemplates(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	pages := []string{
		"index", "login", "register", "error", "settings",
		"profile", "gallery", "about", "blogs", "contact", "menu",
	}
	for _, name := range pages {
		content := "<h1>" + name + "</h1>"
		if name == "error" {
			content = "<p>{{.Message}}</p>"
		}
		path := filepath.Join(dir, name+".html")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write template %v: %v", name, err)
		}
	}

	return dir
}

// login starts a session for userID and returns the matching cookie.
func (e *testEnv) login(t *testing.T, userID string) *http.Cookie {
	t.Helper()

	token, err := e.sessions.Create(context.Background(), auth.Session{UserID: userID})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

// expectUserByID queues the SELECT the auth middleware performs when a
// session cookie resolves.
func (e *testEnv) expectUserByID(id, username, password, avatar, avatarURL string) {
	e.mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id =`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, id, username, password, "", avatar, avatarURL))
}

func sessionCookieFrom(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	return nil
}
