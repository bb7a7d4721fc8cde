package breadcrumb

type Breadcrumb struct {
	Name string
	URL  string
}

// Admin prefixes crumbs with the dashboard entry every console page shares.
func Admin(crumbs ...Breadcrumb) []Breadcrumb {
	return append([]Breadcrumb{{Name: "Dashboard", URL: "/admin/dashboard"}}, crumbs...)
}
