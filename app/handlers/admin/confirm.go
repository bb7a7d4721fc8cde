package admin

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/breadcrumb"
)

// confirmDelete is the page shown between clicking delete and the actual
// delete request.
type confirmDelete struct {
	Title     string
	Prompt    string
	Subject   string
	Action    string
	CancelURL string
	Return    string
	Crumb     breadcrumb.Breadcrumb
}

type AdminConfirmPageData struct {
	other.BasePageData
	Prompt    string
	Subject   string
	Action    string
	CancelURL string
	Return    string
}

func (h *AdminHandler) renderConfirm(w http.ResponseWriter, r *http.Request, c confirmDelete) {
	data := &AdminConfirmPageData{
		Prompt:    c.Prompt,
		Subject:   c.Subject,
		Action:    c.Action,
		CancelURL: c.CancelURL,
		Return:    c.Return,
	}
	h.populateBaseDataForAdmin(w, r, &data.BasePageData, nil)
	data.Title = c.Title
	data.Breadcrumbs = breadcrumb.Admin(c.Crumb, breadcrumb.Breadcrumb{Name: "Delete", URL: c.Action})

	h.render.HTML(w, http.StatusOK, "admin/confirm", data)
}

// formConfirmer approves only when the confirmation page's "confirm" button
// was the one that submitted the form.
func formConfirmer(r *http.Request) listpage.Confirmer {
	return listpage.ConfirmFunc(func(context.Context, string) bool {
		return r.PostFormValue("confirm") == "yes"
	})
}
