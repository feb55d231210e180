package handler

import (
	"fmt"
	"net/http"
)

// PageHandler serves the minimal HTML shells of the portal pages. The actual
// UI is rendered client-side; these routes exist so the session guard has
// something to protect.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// RegisterRoutes mounts the portal pages on the root mux. Only `/`,
// `/us-banks` and `/admin/*` are guarded; every other path passes through
// unchecked.
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux, sessionMw, pageMw, adminPageMw func(http.Handler) http.Handler) {
	mux.Handle("/login", sessionMw(http.HandlerFunc(h.login)))
	mux.Handle("/us-banks", sessionMw(pageMw(http.HandlerFunc(h.page("US Banks Dashboard")))))
	mux.Handle("/admin/", sessionMw(adminPageMw(http.HandlerFunc(h.page("Admin Panel")))))

	// The "/" pattern is a catch-all; only the exact root path is the
	// guarded search page, everything else is a plain 404.
	search := sessionMw(pageMw(http.HandlerFunc(h.page("Client Search"))))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		search.ServeHTTP(w, r)
	}))
}

func (h *PageHandler) login(w http.ResponseWriter, r *http.Request) {
	h.page("Login")(w, r)
}

func (h *PageHandler) page(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<!DOCTYPE html><html><head><title>%s - Galileo</title></head><body><div id="app" data-page="%s"></div></body></html>`, title, title)
	}
}
