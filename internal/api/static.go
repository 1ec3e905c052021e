package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountStatic serves dir under /static/. The landing page behind GET / lives there.
func MountStatic(r chi.Router, dir string) {
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
	r.Handle("/static/*", fs)
}
