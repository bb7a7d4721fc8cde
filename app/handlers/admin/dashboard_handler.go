package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Rakhulsr/go-ecommerce-admin/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/middlewares"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/Rakhulsr/go-ecommerce-admin/app/widgets"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

const recentOrdersLimit = 5

type Config struct {
	PageSize  int
	MaxImages int
	// SearchDelay is how long search boxes wait after the last keystroke.
	SearchDelay time.Duration
}

type AdminHandler struct {
	render       *render.Render
	validator    *validator.Validate
	sessions     sessions.SessionStore
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	orderRepo    repositories.OrderRepositoryImpl
	imageHost    *services.ImageHost
	cfg          Config
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	store sessions.SessionStore,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	orderRepo repositories.OrderRepositoryImpl,
	imageHost *services.ImageHost,
	cfg Config,
) *AdminHandler {
	if cfg.PageSize <= 0 {
		cfg.PageSize = listpage.DefaultLimit
	}
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = widgets.DefaultMaxImages
	}
	if cfg.SearchDelay <= 0 {
		cfg.SearchDelay = listpage.DefaultSearchDelay
	}
	return &AdminHandler{
		render:       render,
		validator:    validator,
		sessions:     store,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		imageHost:    imageHost,
		cfg:          cfg,
	}
}

type AdminPageData struct {
	other.BasePageData
	Stats             models.OrderStats
	AverageOrderValue decimal.Decimal
	RecentOrders      []models.Order
	QuickLinks        []other.NavItem
}

// populateBaseDataForAdmin must run before anything is written to w: it pops
// the flashes stored in the session cookie.
func (h *AdminHandler) populateBaseDataForAdmin(w http.ResponseWriter, r *http.Request, base *other.BasePageData, flasher *sessions.Flasher) {
	helpers.GetBaseData(r, base)
	base.AddFlashes(h.sessions.Flashes(w, r)...)
	if flasher != nil {
		base.AddFlashes(flasher.Pending()...)
	}
}

// redirectIfUnauthorized ends the session when the backend rejected the
// token and sends the admin back to the login page.
func (h *AdminHandler) redirectIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, services.ErrUnauthorized) {
		return false
	}
	log.Printf("AdminHandler: backend rejected session token on %s, signing out", r.URL.Path)
	if clearErr := h.sessions.ClearSession(w, r); clearErr != nil {
		log.Printf("AdminHandler: failed to clear session: %v", clearErr)
	}
	next := ""
	if r.Method == http.MethodGet {
		next = r.URL.RequestURI()
	}
	http.Redirect(w, r, middlewares.LoginURL(next), http.StatusSeeOther)
	return true
}

// redirectWithFlashes carries the collected notifications to the page at
// target.
func (h *AdminHandler) redirectWithFlashes(w http.ResponseWriter, r *http.Request, flasher *sessions.Flasher, target string) {
	if err := flasher.Save(h.sessions, w, r); err != nil {
		log.Printf("AdminHandler: failed to save flashes: %v", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// listQuery reads the list state (page, search, filter) from v.
func (h *AdminHandler) listQuery(v url.Values, filterKey string) listpage.Query {
	q := listpage.Query{
		Page:   helpers.ParsePositiveInt(v.Get("page"), 1),
		Limit:  h.cfg.PageSize,
		Search: strings.TrimSpace(v.Get("search")),
	}
	if filterKey != "" {
		q.Filter = strings.TrimSpace(v.Get(filterKey))
	}
	return q
}

// listValues is the inverse of listQuery, used for links and hidden fields.
func listValues(q listpage.Query, filterKey string) url.Values {
	v := url.Values{}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if filterKey != "" && q.Filter != "" {
		v.Set(filterKey, q.Filter)
	}
	return v
}

// returnQuery reads the hidden "return" field of a modal form: the list
// state to go back to after saving.
func (h *AdminHandler) returnQuery(r *http.Request, filterKey string) listpage.Query {
	v, err := url.ParseQuery(r.PostFormValue("return"))
	if err != nil {
		v = url.Values{}
	}
	return h.listQuery(v, filterKey)
}

// searchDelayMillis is rendered into the search boxes' data-debounce.
func (h *AdminHandler) searchDelayMillis() int64 {
	return h.cfg.SearchDelay.Milliseconds()
}

func listURL(base string, q listpage.Query, filterKey string) string {
	v := listValues(q, filterKey)
	if len(v) == 0 {
		return base
	}
	return base + "?" + v.Encode()
}

func pagination[T any, F any](s listpage.State[T, F], base, filterKey string) other.Pagination {
	return other.Pagination{
		Page:       s.Query.Page,
		TotalPages: s.TotalPages,
		Total:      s.Total,
		BasePath:   base,
		Query:      listValues(s.Query, filterKey),
	}
}

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flasher := sessions.NewFlasher()
	data := &AdminPageData{}

	stats, err := h.orderRepo.Stats(ctx)
	if err == nil {
		data.Stats = *stats
		data.AverageOrderValue = stats.AverageOrderValue()

		data.RecentOrders, err = h.orderRepo.Recent(ctx, recentOrdersLimit)
	}
	if err != nil {
		if h.redirectIfUnauthorized(w, r, err) {
			return
		}
		log.Printf("AdminHandler.GetDashboard: failed to fetch dashboard data: %v", err)
		flasher.Error(ctx, services.MessageOf(err, "Failed to fetch dashboard data"))
	}

	h.populateBaseDataForAdmin(w, r, &data.BasePageData, flasher)
	data.Title = "Dashboard"
	data.Breadcrumbs = breadcrumb.Admin()
	data.QuickLinks = []other.NavItem{
		{Name: "Add Product", URL: "/admin/products?modal=add", Icon: "package"},
		{Name: "Add Category", URL: "/admin/categories?modal=add", Icon: "folder"},
		{Name: "Pending Orders", URL: "/admin/orders?status=" + models.OrderStatusPending, Icon: "cart"},
	}

	h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
