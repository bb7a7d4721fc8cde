package middlewares

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
)

// SessionMiddleware puts the admin stored in the session cookie, if any, on
// the request context.
func SessionMiddleware(store sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if admin, ok := store.GetAdmin(r); ok {
				r = r.WithContext(sessions.WithAdmin(r.Context(), admin))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MethodOverrideMiddleware lets HTML forms send PUT and DELETE through a
// hidden _method field. It must wrap the router so routing sees the
// rewritten method.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := strings.ToUpper(r.URL.Query().Get("_method"))
			if override == "" && !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
				_ = r.ParseForm()
				override = strings.ToUpper(r.PostForm.Get("_method"))
			}
			if override == http.MethodPut || override == http.MethodDelete || override == http.MethodPatch {
				r.Method = override
			}
		}
		next.ServeHTTP(w, r)
	})
}
