package admin

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/gorilla/mux"
)

const categoriesPath = "/admin/categories"

type categoryController = listpage.Controller[models.Category, repositories.CategoryForm]

type AdminCategoryPageData struct {
	other.BasePageData
	State         listpage.State[models.Category, repositories.CategoryForm]
	Pagination    other.Pagination
	AllCategories []models.Category
	ParentOptions []models.Category
	FormAction    string
	ReturnQuery   string
	Search        string
	SearchDelay   int64
}

func (d *AdminCategoryPageData) ParentName(c models.Category) string {
	return repositories.ParentName(c, d.AllCategories)
}

func (h *AdminHandler) newCategoryController(q listpage.Query, n listpage.Notifier) *categoryController {
	return listpage.New(listpage.Config[models.Category, repositories.CategoryForm]{
		Name:     "CategoryController",
		Store:    h.categoryRepo,
		Schema:   repositories.NewCategorySchema(h.validator),
		Notifier: n,
		Messages: listpage.DefaultMessages("category", "categories"),
	}, listpage.Initial(q), listpage.FilterResetsPage(), listpage.SkipRefetch())
}

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flasher := sessions.NewFlasher()
	ctl := h.newCategoryController(h.listQuery(r.URL.Query(), ""), flasher)
	defer ctl.Close()

	if err := ctl.Load(ctx); err != nil && h.redirectIfUnauthorized(w, r, err) {
		return
	}

	switch r.URL.Query().Get("modal") {
	case "add":
		ctl.OpenAdd()
	case "edit":
		id := r.URL.Query().Get("id")
		category, err := h.categoryRepo.GetByID(ctx, id)
		if err != nil {
			if h.redirectIfUnauthorized(w, r, err) {
				return
			}
			log.Printf("AdminHandler.GetCategoriesPage: failed to fetch category %s: %v", id, err)
			flasher.Error(ctx, services.MessageOf(err, "Failed to fetch category"))
		} else {
			ctl.OpenEdit(*category)
		}
	}

	h.renderCategoriesPage(w, r, ctl, flasher)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, "")
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, mux.Vars(r)["id"])
}

func (h *AdminHandler) saveCategory(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		log.Printf("AdminHandler.saveCategory: failed to parse form: %v", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	flasher := sessions.NewFlasher()
	q := h.returnQuery(r, "")
	ctl := h.newCategoryController(q, flasher)
	defer ctl.Close()

	form := repositories.CategoryForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		ParentID:    strings.TrimSpace(r.PostFormValue("parent_id")),
		IsActive:    checkbox(r, "is_active"),
	}
	if id != "" && form.ParentID == id {
		form.ParentID = ""
	}

	ctl.SetForm(id, form)
	err := ctl.Submit(ctx)
	if err == nil {
		h.redirectWithFlashes(w, r, flasher, listURL(categoriesPath, q, ""))
		return
	}
	if h.redirectIfUnauthorized(w, r, err) {
		return
	}
	if err := ctl.Load(ctx); err != nil && h.redirectIfUnauthorized(w, r, err) {
		return
	}
	h.renderCategoriesPage(w, r, ctl, flasher)
}

func (h *AdminHandler) ConfirmDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	name := id
	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err == nil {
		name = category.Name
	} else if h.redirectIfUnauthorized(w, r, err) {
		return
	}
	q := h.listQuery(r.URL.Query(), "")
	h.renderConfirm(w, r, confirmDelete{
		Title:     "Delete Category",
		Prompt:    listpage.DefaultMessages("category", "categories").ConfirmDelete,
		Subject:   name,
		Action:    fmt.Sprintf("%s/%s/delete", categoriesPath, url.PathEscape(id)),
		CancelURL: listURL(categoriesPath, q, ""),
		Return:    listValues(q, "").Encode(),
		Crumb:     breadcrumb.Breadcrumb{Name: "Categories", URL: categoriesPath},
	})
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	flasher := sessions.NewFlasher()
	q := h.returnQuery(r, "")
	ctl := h.newCategoryController(q, flasher)
	defer ctl.Close()

	err := ctl.Delete(r.Context(), mux.Vars(r)["id"], formConfirmer(r))
	if h.redirectIfUnauthorized(w, r, err) {
		return
	}
	h.redirectWithFlashes(w, r, flasher, listURL(categoriesPath, q, ""))
}

func (h *AdminHandler) renderCategoriesPage(w http.ResponseWriter, r *http.Request, ctl *categoryController, flasher *sessions.Flasher) {
	state := ctl.State()

	all, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.renderCategoriesPage: failed to fetch parent options: %v", err)
	}

	data := &AdminCategoryPageData{
		State:         state,
		Pagination:    pagination(state, categoriesPath, ""),
		AllCategories: all,
		ParentOptions: repositories.ParentOptions(all, state.Modal.Key),
		FormAction:    categoriesPath,
		ReturnQuery:   listValues(state.Query, "").Encode(),
		Search:        state.Query.Search,
		SearchDelay:   h.searchDelayMillis(),
	}
	if state.Modal.Editing() {
		data.FormAction = categoriesPath + "/" + url.PathEscape(state.Modal.Key)
	}
	h.populateBaseDataForAdmin(w, r, &data.BasePageData, flasher)
	data.Title = "Categories"
	data.Breadcrumbs = breadcrumb.Admin(breadcrumb.Breadcrumb{Name: "Categories", URL: categoriesPath})

	h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}
