package services

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

// StaticFileService serves the built dashboard. Unknown paths fall back to index.html
// so client side routes survive a reload.
type StaticFileService struct {
	Directory string
}

func (s StaticFileService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/*", s.serve)
	return r
}

func (s StaticFileService) serve(w http.ResponseWriter, r *http.Request) {
	root := os.DirFS(s.Directory)
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	if info, err := fs.Stat(root, name); err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if path.Ext(name) != "" {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, root, "index.html")
		return
	}

	http.FileServerFS(root).ServeHTTP(w, r)
}
