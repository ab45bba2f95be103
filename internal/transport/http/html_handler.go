package http

import (
	"net/http"
	"os"
	"path/filepath"
)

// ServeDashboardPage serves the upload/dashboard page.
func ServeDashboardPage(webDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indexPath := filepath.Join(webDir, "index.html")

		if _, err := os.Stat(indexPath); os.IsNotExist(err) {
			http.Error(w, "Dashboard page not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		http.ServeFile(w, r, indexPath)
	}
}

// ServeStaticAssets serves frontend assets under /static/.
func ServeStaticAssets(webDir string) http.Handler {
	fs := http.FileServer(http.Dir(filepath.Join(webDir, "static")))
	return http.StripPrefix("/static/", fs)
}
