package routes

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/copperkettle/coffeehouse/internal/auth"
	"github.com/copperkettle/coffeehouse/internal/views"
)

// PageRoutes serves the public content pages. None of them touch the
// stores; the current user comes from the request context.
type PageRoutes struct {
	views *views.Renderer
}

func NewPageRoutes(v *views.Renderer) *PageRoutes {
	return &PageRoutes{views: v}
}

func (pr *PageRoutes) Register(r chi.Router) {
	r.Get("/", pr.page("index"))
	r.Get("/gallery", pr.page("gallery"))
	r.Get("/about", pr.page("about"))
	// The blog page has always rendered the "blogs" template.
	r.Get("/blog", pr.page("blogs"))
	r.Get("/contact", pr.page("contact"))
	r.Get("/menu", pr.page("menu"))
	r.Get("/error", pr.ErrorPage)
}

func (pr *PageRoutes) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pr.views.Render(w, name, pageData{User: auth.UserFrom(r.Context())})
	}
}

// ErrorPage renders the message passed in the msg query parameter.
func (pr *PageRoutes) ErrorPage(w http.ResponseWriter, r *http.Request) {
	msg := r.URL.Query().Get("msg")
	if msg == "" {
		msg = "An error occurred."
	}

	pr.views.Render(w, "error", pageData{
		User:    auth.UserFrom(r.Context()),
		Message: msg,
	})
}
