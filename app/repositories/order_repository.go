package repositories

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
)

// OrderRepositoryImpl has no Create or Delete: orders are placed by
// customers and the console only moves their status.
type OrderRepositoryImpl interface {
	List(ctx context.Context, q listpage.Query) (listpage.Page[models.Order], error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, id string, form models.StatusUpdate) error
	Recent(ctx context.Context, n int) ([]models.Order, error)
	Stats(ctx context.Context) (*models.OrderStats, error)
}

type orderRepository struct {
	svc *services.OrderService
}

func NewOrderRepository(svc *services.OrderService) OrderRepositoryImpl {
	return &orderRepository{svc: svc}
}

func (r *orderRepository) List(ctx context.Context, q listpage.Query) (listpage.Page[models.Order], error) {
	resp, err := r.svc.List(ctx, services.ListParams{
		Page:        q.Page,
		Limit:       q.Limit,
		OrderNumber: q.Search,
		Status:      q.Filter,
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
	})
	if err != nil {
		return listpage.Page[models.Order]{}, err
	}
	return toPage(resp), nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.svc.Get(ctx, id)
}

func (r *orderRepository) Update(ctx context.Context, id string, form models.StatusUpdate) error {
	form.TrackingNumber = strings.TrimSpace(form.TrackingNumber)
	_, err := r.svc.UpdateStatus(ctx, id, form)
	return err
}

func (r *orderRepository) Recent(ctx context.Context, n int) ([]models.Order, error) {
	resp, err := r.svc.List(ctx, services.ListParams{Page: 1, Limit: n, SortOrder: "desc"})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *orderRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	return r.svc.Stats(ctx)
}

type OrderSchema struct{}

func (OrderSchema) Key(o models.Order) string { return o.ID }

func (OrderSchema) Defaults() models.StatusUpdate {
	return models.StatusUpdate{Status: models.OrderStatusPending}
}

func (OrderSchema) FromRow(o models.Order) models.StatusUpdate {
	return models.StatusUpdate{Status: o.Status, TrackingNumber: o.TrackingNumber}
}

// Validate only checks that the status is one the backend knows. Any
// transition is allowed here; the backend rejects the ones it does not.
func (OrderSchema) Validate(f models.StatusUpdate) *listpage.ValidationError {
	if !models.IsOrderStatus(f.Status) {
		return fieldErrors(map[string]string{"status": "Unknown order status."}, "Please select a valid status")
	}
	return nil
}
