package other

import (
	"html/template"
	"net/url"

	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
)

type UserForTemplate struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      string
	Initial   string
}

type NavItem struct {
	Name   string
	URL    string
	Icon   string
	Active bool
}

// BasePageData is embedded by every page rendered inside the console layout.
type BasePageData struct {
	Title       string
	IsLoggedIn  bool
	User        *UserForTemplate
	CSRFField   template.HTML
	CSRFToken   string
	Flashes     []sessions.Flash
	Query       url.Values
	Breadcrumbs []breadcrumb.Breadcrumb
	Nav         []NavItem
	CurrentPath string
	IsAuthPage  bool
}

func (b *BasePageData) AddFlashes(flashes ...sessions.Flash) {
	b.Flashes = append(b.Flashes, flashes...)
}
