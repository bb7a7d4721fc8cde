package admin

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/Rakhulsr/go-ecommerce-admin/app/widgets"
	"github.com/gorilla/mux"
)

const (
	productsPath      = "/admin/products"
	productFilterKey  = "category_id"
	maxUploadMemory   = 32 << 20
	maxImageFileSize  = 10 << 20
	removeImagePrefix = "remove_image:"
)

type productController = listpage.Controller[models.Product, repositories.ProductForm]

type AdminProductPageData struct {
	other.BasePageData
	State         listpage.State[models.Product, repositories.ProductForm]
	Pagination    other.Pagination
	Categories    []models.Category
	Images        *widgets.ImageList
	UploadEnabled bool
	FormAction    string
	ReturnQuery   string
	Search        string
	CategoryID    string
	SearchDelay   int64
}

// CategoryName resolves a product's category for the table.
func (d *AdminProductPageData) CategoryName(id string) string {
	for _, c := range d.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "-"
}

func (h *AdminHandler) newProductController(q listpage.Query, n listpage.Notifier) *productController {
	return listpage.New(listpage.Config[models.Product, repositories.ProductForm]{
		Name:     "ProductController",
		Store:    h.productRepo,
		Schema:   repositories.NewProductSchema(h.validator),
		Notifier: n,
		Messages: listpage.DefaultMessages("product", "products"),
	}, listpage.Initial(q), listpage.FilterResetsPage(), listpage.SkipRefetch())
}

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flasher := sessions.NewFlasher()
	ctl := h.newProductController(h.listQuery(r.URL.Query(), productFilterKey), flasher)
	defer ctl.Close()

	if err := ctl.Load(ctx); err != nil && h.redirectIfUnauthorized(w, r, err) {
		return
	}

	switch r.URL.Query().Get("modal") {
	case "add":
		ctl.OpenAdd()
	case "edit":
		id := r.URL.Query().Get("id")
		product, err := h.productRepo.GetByID(ctx, id)
		if err != nil {
			if h.redirectIfUnauthorized(w, r, err) {
				return
			}
			log.Printf("AdminHandler.GetProductsPage: failed to fetch product %s: %v", id, err)
			flasher.Error(ctx, services.MessageOf(err, "Failed to fetch product"))
		} else {
			ctl.OpenEdit(*product)
		}
	}

	h.renderProductsPage(w, r, ctl, nil, flasher)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, "")
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, mux.Vars(r)["id"])
}

// saveProduct handles every post of the product modal: the image widget
// actions re-render the modal, anything else submits the form.
func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	if err := parseForm(r); err != nil {
		log.Printf("AdminHandler.saveProduct: failed to parse form: %v", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	flasher := sessions.NewFlasher()
	q := h.returnQuery(r, productFilterKey)
	ctl := h.newProductController(q, flasher)
	defer ctl.Close()

	form := productFormFromRequest(r)
	images := widgets.NewImageList(h.cfg.MaxImages, form.Images...)
	action := r.PostFormValue("action")

	switch {
	case action == "add_image":
		if err := images.Add(r.PostFormValue("image_url")); err != nil {
			flasher.Error(ctx, images.Message(err))
		}
	case strings.HasPrefix(action, removeImagePrefix):
		if i, err := strconv.Atoi(strings.TrimPrefix(action, removeImagePrefix)); err == nil {
			images.Remove(i)
		}
	case action == "upload_images":
		files, err := uploadedFiles(r, "files")
		if err == nil {
			err = images.Upload(ctx, h.imageHost, files)
		}
		if err != nil {
			log.Printf("AdminHandler.saveProduct: image upload failed: %v", err)
			flasher.Error(ctx, images.Message(err))
		} else {
			flasher.Success(ctx, "Images uploaded successfully")
		}
	default:
		ctl.SetForm(id, form)
		err := ctl.Submit(ctx)
		if err == nil {
			h.redirectWithFlashes(w, r, flasher, listURL(productsPath, q, productFilterKey))
			return
		}
		if h.redirectIfUnauthorized(w, r, err) {
			return
		}
		if err := ctl.Load(ctx); err != nil && h.redirectIfUnauthorized(w, r, err) {
			return
		}
		h.renderProductsPage(w, r, ctl, images, flasher)
		return
	}

	form.Images = images.URLs()
	ctl.SetForm(id, form)
	if err := ctl.Load(ctx); err != nil && h.redirectIfUnauthorized(w, r, err) {
		return
	}
	h.renderProductsPage(w, r, ctl, images, flasher)
}

func (h *AdminHandler) ConfirmDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.productRepo.GetByID(r.Context(), id)
	name := id
	if err == nil {
		name = product.Name
	} else if h.redirectIfUnauthorized(w, r, err) {
		return
	}
	h.renderConfirm(w, r, confirmDelete{
		Title:     "Delete Product",
		Prompt:    listpage.DefaultMessages("product", "products").ConfirmDelete,
		Subject:   name,
		Action:    fmt.Sprintf("%s/%s/delete", productsPath, url.PathEscape(id)),
		CancelURL: listURL(productsPath, h.listQuery(r.URL.Query(), productFilterKey), productFilterKey),
		Return:    listValues(h.listQuery(r.URL.Query(), productFilterKey), productFilterKey).Encode(),
		Crumb:     breadcrumb.Breadcrumb{Name: "Products", URL: productsPath},
	})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	flasher := sessions.NewFlasher()
	q := h.returnQuery(r, productFilterKey)
	ctl := h.newProductController(q, flasher)
	defer ctl.Close()

	err := ctl.Delete(r.Context(), mux.Vars(r)["id"], formConfirmer(r))
	if h.redirectIfUnauthorized(w, r, err) {
		return
	}
	h.redirectWithFlashes(w, r, flasher, listURL(productsPath, q, productFilterKey))
}

func (h *AdminHandler) renderProductsPage(w http.ResponseWriter, r *http.Request, ctl *productController, images *widgets.ImageList, flasher *sessions.Flasher) {
	ctx := r.Context()
	state := ctl.State()

	categories, err := h.categoryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("AdminHandler.renderProductsPage: failed to fetch categories: %v", err)
	}

	if images == nil {
		images = widgets.NewImageList(h.cfg.MaxImages, state.Modal.Form.Images...)
	}

	data := &AdminProductPageData{
		State:         state,
		Pagination:    pagination(state, productsPath, productFilterKey),
		Categories:    categories,
		Images:        images,
		UploadEnabled: h.imageHost.Enabled(),
		FormAction:    productsPath,
		ReturnQuery:   listValues(state.Query, productFilterKey).Encode(),
		Search:        state.Query.Search,
		CategoryID:    state.Query.Filter,
		SearchDelay:   h.searchDelayMillis(),
	}
	if state.Modal.Editing() {
		data.FormAction = productsPath + "/" + url.PathEscape(state.Modal.Key)
	}
	h.populateBaseDataForAdmin(w, r, &data.BasePageData, flasher)
	data.Title = "Products"
	data.Breadcrumbs = breadcrumb.Admin(breadcrumb.Breadcrumb{Name: "Products", URL: productsPath})

	h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func productFormFromRequest(r *http.Request) repositories.ProductForm {
	var images []string
	for _, u := range r.PostForm["images"] {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	return repositories.ProductForm{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		Description:   strings.TrimSpace(r.PostFormValue("description")),
		Price:         strings.TrimSpace(r.PostFormValue("price")),
		SKU:           strings.TrimSpace(r.PostFormValue("sku")),
		CategoryID:    strings.TrimSpace(r.PostFormValue("category_id")),
		StockQuantity: strings.TrimSpace(r.PostFormValue("stock_quantity")),
		IsActive:      checkbox(r, "is_active"),
		IsFeatured:    checkbox(r, "is_featured"),
		Images:        images,
	}
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadMemory)
	}
	return r.ParseForm()
}

func checkbox(r *http.Request, name string) bool {
	switch r.PostFormValue(name) {
	case "on", "true", "1":
		return true
	}
	return false
}

var errFileTooLarge = errors.New("file too large")

func uploadedFiles(r *http.Request, field string) ([]widgets.File, error) {
	if r.MultipartForm == nil {
		return nil, widgets.ErrNoFiles
	}
	headers := r.MultipartForm.File[field]
	files := make([]widgets.File, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxImageFileSize {
			return nil, fmt.Errorf("%s: %w", fh.Filename, errFileTooLarge)
		}
		data, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, widgets.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
