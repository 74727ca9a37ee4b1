package object

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/magiccap/imagehost/internal/response"
)

// Routes builds the public router: the marketing-site redirect, the upload
// endpoint, and single-segment retrieval. Unmatched paths get the same
// plain-text 404 as a missing object, and are never reported as errors.
func (h *Handler) Routes(redirectURL string) chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, redirectURL, http.StatusFound)
	})
	r.Post("/upload", h.Upload)
	r.Get("/{key}", h.Serve)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})

	return r
}
