package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the built frontend bundle, falling back to the index
// document so that client-side routes resolve after a full page reload.
type FrontendHandler struct {
	staticDir string
	indexFile string
}

func NewFrontendHandler(staticDir, indexFile string) *FrontendHandler {
	return &FrontendHandler{staticDir: staticDir, indexFile: indexFile}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))
	if !strings.HasPrefix(requested, filepath.Clean(h.staticDir)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(requested)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.staticDir, h.indexFile))
		return
	}

	http.ServeFile(w, r, requested)
}
