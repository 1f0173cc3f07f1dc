package ui

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static/*
var content embed.FS

const (
	// The page must be revalidated so a redeploy shows up on reload.
	pageCache = "no-cache"
	// Scripts and styles may be reused briefly.
	assetCache = "public, max-age=300"
)

// Handler serves the price lookup page at / and its assets beside it.
// Directory listings are never served.
func Handler() http.Handler {
	static, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	files := http.FileServer(http.FS(static))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/")
		switch {
		case name == "" || name == "index.html":
			w.Header().Set("Cache-Control", pageCache)
		case strings.HasSuffix(name, "/"):
			http.NotFound(w, r)
			return
		default:
			if _, err := fs.Stat(static, name); err != nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", assetCache)
		}
		files.ServeHTTP(w, r)
	})
}
