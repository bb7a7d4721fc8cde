package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
)

// AdminAuthMiddleware lets a request through only when SessionMiddleware
// found a signed-in admin. Anyone else is sent to the login page.
func AdminAuthMiddleware(store sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, ok := sessions.AdminFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
				return
			}

			if !admin.User.IsAdmin() {
				log.Printf("AdminAuthMiddleware: User %s (%s) attempted to access admin panel without admin role.", admin.User.ID, admin.User.Email)
				if err := store.ClearSession(w, r); err != nil {
					log.Printf("AdminAuthMiddleware: failed to clear session: %v", err)
				}
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoginURL is the login page that returns to next after signing in.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}
