package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"warehouse/loadmap/internal/middleware"
	"warehouse/loadmap/internal/ui"
)

// RegisterUIRoutes registers the browser views and their static assets.
func RegisterUIRoutes(r chi.Router, uiHandler *ui.UIHandler) {
	fileServer := http.FileServer(http.FS(ui.StaticFS()))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/loadmaps", http.StatusFound)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.EditorSessionMiddleware)
		r.Mount("/ui", uiHandler.Routes())
	})
}
