package helpers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/gorilla/csrf"
)

var adminNav = []other.NavItem{
	{Name: "Dashboard", URL: "/admin/dashboard", Icon: "dashboard"},
	{Name: "Products", URL: "/admin/products", Icon: "package"},
	{Name: "Categories", URL: "/admin/categories", Icon: "folder"},
	{Name: "Orders", URL: "/admin/orders", Icon: "cart"},
	{Name: "Users", URL: "/admin/users", Icon: "users"},
}

// Nav returns the sidebar entries with the one matching path marked active.
func Nav(path string) []other.NavItem {
	items := make([]other.NavItem, len(adminNav))
	copy(items, adminNav)
	for i := range items {
		items[i].Active = path == items[i].URL || strings.HasPrefix(path, items[i].URL+"/")
	}
	return items
}

// GetBaseData fills the fields shared by every page: signed-in user, CSRF
// field, sidebar, pending flashes and the current query.
func GetBaseData(r *http.Request, base *other.BasePageData) {
	base.CurrentPath = r.URL.Path
	base.Query = cloneValues(r.URL.Query())
	base.Nav = Nav(r.URL.Path)
	base.CSRFField = csrf.TemplateField(r)
	base.CSRFToken = csrf.Token(r)

	if admin, ok := sessions.AdminFromContext(r.Context()); ok {
		base.IsLoggedIn = true
		base.User = &other.UserForTemplate{
			ID:        admin.User.ID,
			FirstName: admin.User.FirstName,
			LastName:  admin.User.LastName,
			Email:     admin.User.Email,
			Role:      admin.User.Role,
			Initial:   admin.User.Initial(),
		}
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
