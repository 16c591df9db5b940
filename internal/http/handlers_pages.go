package httpx

import (
	"fmt"
	"net/http"
	"net/url"
)

// PageHandler serves the minimal server-rendered pages the gate routes
// between. The real UI is a separate frontend; these pages exist so the
// platform is navigable without it.
type PageHandler struct{}

// NewPageHandler constructs a PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><html><head><title>%s</title></head><body>%s</body></html>", title, body)
}

// Login renders the sign-in page.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect"))
	writePage(w, "Sign in",
		fmt.Sprintf(`<h1>Sign in</h1><p><a href="/auth/login?redirect=%s">Continue with your identity provider</a></p>`, url.QueryEscape(redirect)))
}

// AdminDashboard renders the team landing page shell.
func (h *PageHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Admin dashboard", `<h1>Admin dashboard</h1><p>Stats at <a href="/api/dashboard/admin">/api/dashboard/admin</a>.</p>`)
}

// ContributorDashboard renders the contributor landing page shell.
func (h *PageHandler) ContributorDashboard(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Contributor dashboard", `<h1>Contributor dashboard</h1><p>Stats at <a href="/api/dashboard/contributor">/api/dashboard/contributor</a>.</p>`)
}

// Index sends signed-in users to their landing page; the gate has already
// redirected everyone else to sign-in.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Aromabase", `<h1>Aromabase</h1><p><a href="/admin/dashboard">Admin</a> | <a href="/contribute/dashboard">Contribute</a></p>`)
}
