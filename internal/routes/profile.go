package routes

import (
	"log"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/copperkettle/coffeehouse/internal/auth"
	"github.com/copperkettle/coffeehouse/internal/database"
	"github.com/copperkettle/coffeehouse/internal/upload"
	"github.com/copperkettle/coffeehouse/internal/views"
)

// ProfileRoutes serves the settings and profile pages, both guarded by
// the auth gate and both accepting an avatar upload.
type ProfileRoutes struct {
	users   *database.UserStore
	uploads *upload.Store
	views   *views.Renderer
}

func NewProfileRoutes(users *database.UserStore, uploads *upload.Store, v *views.Renderer) *ProfileRoutes {
	return &ProfileRoutes{
		users:   users,
		uploads: uploads,
		views:   v,
	}
}

func (pr *ProfileRoutes) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Get("/settings", pr.SettingsPage)
		r.Post("/settings", pr.UpdateSettings)
		r.Get("/profile", pr.ProfilePage)
		r.Post("/profile/update", pr.UpdateProfile)
	})
}

func (pr *ProfileRoutes) SettingsPage(w http.ResponseWriter, r *http.Request) {
	pr.views.Render(w, "settings", pageData{User: auth.UserFrom(r.Context())})
}

func (pr *ProfileRoutes) ProfilePage(w http.ResponseWriter, r *http.Request) {
	pr.views.Render(w, "profile", pageData{User: auth.UserFrom(r.Context())})
}

// UpdateSettings applies username/password changes and an optional avatar
// upload, then saves the user in one write. A failed save loses every
// pending change for the request; nothing is rolled back piecemeal.
func (pr *ProfileRoutes) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	avatarPath, err := pr.storeAvatar(r, user)
	if err != nil {
		log.Printf("failed to store avatar: %v", err)
		redirectError(w, r, "Settings update failed")
		return
	}

	applySettings(user, r.FormValue("username"), r.FormValue("password"), avatarPath)

	if err := pr.users.Save(r.Context(), user); err != nil {
		log.Printf("failed to save settings: %v", err)
		redirectError(w, r, "Settings update failed")
		return
	}

	http.Redirect(w, r, "/settings", http.StatusFound)
}

// UpdateProfile applies username/email changes and an optional avatar
// upload, recording the access path on AvatarURL.
func (pr *ProfileRoutes) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	avatarPath, err := pr.storeAvatar(r, user)
	if err != nil {
		log.Printf("failed to store avatar: %v", err)
		redirectError(w, r, "Profile update failed")
		return
	}

	applyProfile(user, r.FormValue("username"), r.FormValue("email"), avatarPath)

	if err := pr.users.Save(r.Context(), user); err != nil {
		log.Printf("failed to save profile: %v", err)
		redirectError(w, r, "Profile update failed")
		return
	}

	http.Redirect(w, r, "/profile", http.StatusFound)
}

// storeAvatar saves the uploaded avatar file, if the request carries one,
// and returns its access path. Requests without a file (or without a
// multipart body at all) return an empty path.
func (pr *ProfileRoutes) storeAvatar(r *http.Request, user *database.User) (string, error) {
	file, header, err := r.FormFile("avatar")
	if err != nil {
		return "", nil
	}
	defer file.Close()

	owner := ""
	if user != nil {
		owner = user.UserID
	}

	name, err := pr.uploads.SaveAvatar(file, header.Filename, owner)
	if err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}

// applySettings merges the settings form into the user. Empty fields
// leave the stored values untouched.
func applySettings(u *database.User, username, password, avatarPath string) {
	if username != "" {
		u.Username = username
	}
	if password != "" {
		u.Password = password
	}
	if avatarPath != "" {
		u.Avatar = avatarPath
	}
}

// applyProfile merges the profile form into the user. Empty fields leave
// the stored values untouched.
func applyProfile(u *database.User, username, email, avatarPath string) {
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	if avatarPath != "" {
		u.AvatarURL = avatarPath
	}
}
