package services

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
)

// OrderService is read-mostly: orders are placed by customers, the console
// only lists them and moves their status.
type OrderService struct {
	api *APIClient
}

func NewOrderService(api *APIClient) *OrderService {
	return &OrderService{api: api}
}

func (s *OrderService) List(ctx context.Context, params ListParams) (*ListResponse[models.Order], error) {
	var resp ListResponse[models.Order]
	if err := s.api.do(ctx, http.MethodGet, "/orders", params.Values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	var resp ItemResponse[models.Order]
	if err := s.api.do(ctx, http.MethodGet, resourcePath("orders", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Order, error) {
	var resp ItemResponse[models.Order]
	if err := s.api.do(ctx, http.MethodPut, resourcePath("orders", id)+"/status", nil, update, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *OrderService) Stats(ctx context.Context) (*models.OrderStats, error) {
	var resp ItemResponse[models.OrderStats]
	if err := s.api.do(ctx, http.MethodGet, "/orders/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
