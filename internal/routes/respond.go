// Package routes maps HTTP requests onto the stores, the session manager
// and the upload handler, and renders the site's pages.
package routes

import (
	"net/http"
	"net/url"

	"github.com/copperkettle/coffeehouse/internal/database"
)

// pageData is the shape every template receives. User is nil for
// anonymous requests.
type pageData struct {
	User    *database.User
	Message string
}

// redirectError sends the browser to the generic error page carrying a
// short human-readable message. Every failure in the route layer ends up
// here; there are no structured error responses.
func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/error?msg="+url.PathEscape(msg), http.StatusFound)
}
