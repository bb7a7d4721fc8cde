package admin

import (
	"html/template"
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
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/calc"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const (
	ordersPath     = "/admin/orders"
	orderFilterKey = "status"
)

type orderController = listpage.Controller[models.Order, models.StatusUpdate]

type AdminOrderPageData struct {
	other.BasePageData
	State       listpage.State[models.Order, models.StatusUpdate]
	Pagination  other.Pagination
	Statuses    []string
	Search      string
	Status      string
	ReturnQuery string
	// StatusOrder is the order whose status modal is open.
	StatusOrder *models.Order
	StatusForm  *StatusForm
	SearchDelay int64
}

type AdminOrderDetailPageData struct {
	other.BasePageData
	Order      *models.Order
	Statuses   []string
	ItemsTotal decimal.Decimal
	GrandTotal decimal.Decimal
	StatusForm *StatusForm
}

// StatusForm feeds the "partials/status-form" template shared by the list
// modal and the details page.
type StatusForm struct {
	ID        string
	Return    string
	From      string
	CancelURL string
	CSRFField template.HTML
	Statuses  []string
	Form      models.StatusUpdate
	Errors    map[string]string
}

func orderMessages() listpage.Messages {
	m := listpage.DefaultMessages("order", "orders")
	m.Updated = "Order status updated successfully"
	m.UpdateFailed = "Failed to update order status"
	return m
}

func (h *AdminHandler) newOrderController(q listpage.Query, n listpage.Notifier) *orderController {
	q.SortBy = "created_at"
	q.SortOrder = "desc"
	return listpage.New(listpage.Config[models.Order, models.StatusUpdate]{
		Name:     "OrderController",
		Store:    h.orderRepo,
		Schema:   repositories.OrderSchema{},
		Notifier: n,
		Messages: orderMessages(),
	}, listpage.Initial(q), listpage.FilterResetsPage(), listpage.SkipRefetch())
}

func (h *AdminHandler) GetOrdersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flasher := sessions.NewFlasher()
	ctl := h.newOrderController(h.listQuery(r.URL.Query(), orderFilterKey), flasher)
	defer ctl.Close()

	if err := ctl.Load(ctx); err != nil && h.redirectIfUnauthorized(w, r, err) {
		return
	}

	var statusOrder *models.Order
	if r.URL.Query().Get("modal") == "status" {
		id := r.URL.Query().Get("id")
		order, err := h.orderRepo.GetByID(ctx, id)
		if err != nil {
			if h.redirectIfUnauthorized(w, r, err) {
				return
			}
			log.Printf("AdminHandler.GetOrdersPage: failed to fetch order %s: %v", id, err)
			flasher.Error(ctx, services.MessageOf(err, "Failed to fetch order details"))
		} else {
			ctl.OpenEdit(*order)
			statusOrder = order
		}
	}

	state := ctl.State()
	returnQuery := listValues(state.Query, orderFilterKey).Encode()
	data := &AdminOrderPageData{
		State:       state,
		Pagination:  pagination(state, ordersPath, orderFilterKey),
		Statuses:    models.OrderStatuses,
		Search:      state.Query.Search,
		Status:      state.Query.Filter,
		ReturnQuery: returnQuery,
		StatusOrder: statusOrder,
		SearchDelay: h.searchDelayMillis(),
	}
	h.populateBaseDataForAdmin(w, r, &data.BasePageData, flasher)
	if statusOrder != nil && state.Modal.Open {
		data.StatusForm = &StatusForm{
			ID:        statusOrder.ID,
			Return:    returnQuery,
			From:      "list",
			CancelURL: listURL(ordersPath, state.Query, orderFilterKey),
			CSRFField: data.CSRFField,
			Statuses:  models.OrderStatuses,
			Form:      state.Modal.Form,
			Errors:    state.Modal.Errors,
		}
	}
	data.Title = "Orders"
	data.Breadcrumbs = breadcrumb.Admin(breadcrumb.Breadcrumb{Name: "Orders", URL: ordersPath})

	h.render.HTML(w, http.StatusOK, "admin/orders/index", data)
}

func (h *AdminHandler) GetOrderDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]
	flasher := sessions.NewFlasher()

	order, err := h.orderRepo.GetByID(ctx, id)
	if err != nil {
		if h.redirectIfUnauthorized(w, r, err) {
			return
		}
		log.Printf("AdminHandler.GetOrderDetail: failed to fetch order %s: %v", id, err)
		flasher.Error(ctx, services.MessageOf(err, "Failed to fetch order details"))
		h.redirectWithFlashes(w, r, flasher, ordersPath)
		return
	}

	totals := make([]decimal.Decimal, 0, len(order.Items))
	for _, item := range order.Items {
		totals = append(totals, item.Total)
	}

	// Older orders may lack a stored total.
	grandTotal := order.TotalAmount
	if grandTotal.IsZero() {
		grandTotal = calc.CalculateGrandTotal(order.Subtotal, order.Tax, order.ShippingFee, order.Discount)
	}

	data := &AdminOrderDetailPageData{
		Order:      order,
		Statuses:   models.OrderStatuses,
		ItemsTotal: calc.ItemsTotal(totals...),
		GrandTotal: grandTotal,
	}
	h.populateBaseDataForAdmin(w, r, &data.BasePageData, flasher)
	if r.URL.Query().Get("modal") == "status" {
		detailURL := ordersPath + "/" + url.PathEscape(order.ID)
		data.StatusForm = &StatusForm{
			ID:        order.ID,
			From:      "detail",
			CancelURL: detailURL,
			CSRFField: data.CSRFField,
			Statuses:  models.OrderStatuses,
			Form:      repositories.OrderSchema{}.FromRow(*order),
		}
	}
	data.Title = "Order " + order.OrderNumber
	data.Breadcrumbs = breadcrumb.Admin(
		breadcrumb.Breadcrumb{Name: "Orders", URL: ordersPath},
		breadcrumb.Breadcrumb{Name: order.OrderNumber, URL: ordersPath + "/" + url.PathEscape(order.ID)},
	)

	h.render.HTML(w, http.StatusOK, "admin/orders/detail", data)
}

// UpdateOrderStatus submits the status modal, then returns to the page the
// modal was opened from: the order details or the list.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("AdminHandler.UpdateOrderStatus: failed to parse form: %v", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	flasher := sessions.NewFlasher()
	q := h.returnQuery(r, orderFilterKey)
	ctl := h.newOrderController(q, flasher)
	defer ctl.Close()

	ctl.SetForm(id, models.StatusUpdate{
		Status:         strings.TrimSpace(r.PostFormValue("status")),
		TrackingNumber: strings.TrimSpace(r.PostFormValue("tracking_number")),
	})
	err := ctl.Submit(r.Context())
	if h.redirectIfUnauthorized(w, r, err) {
		return
	}

	target := listURL(ordersPath, q, orderFilterKey)
	if r.PostFormValue("from") == "detail" {
		target = ordersPath + "/" + url.PathEscape(id)
	}
	h.redirectWithFlashes(w, r, flasher, target)
}
