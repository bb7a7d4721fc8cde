package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-admin/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/breadcrumb"
)

type AdminUserPageData struct {
	other.BasePageData
}

// GetUsersPage renders the placeholder for user management, which the
// backend does not expose yet.
func (h *AdminHandler) GetUsersPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminUserPageData{}
	h.populateBaseDataForAdmin(w, r, &data.BasePageData, nil)

	data.Title = "Users"
	data.Breadcrumbs = breadcrumb.Admin(breadcrumb.Breadcrumb{Name: "Users", URL: "/admin/users"})

	h.render.HTML(w, http.StatusOK, "admin/users/index", data)
}
