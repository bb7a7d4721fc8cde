package services

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
)

// ResourceService is the CRUD client of one backend collection. T is the
// entity as returned by the backend, P the body sent on create and update.
type ResourceService[T any, P any] struct {
	api        *APIClient
	collection string
}

func NewResourceService[T any, P any](api *APIClient, collection string) *ResourceService[T, P] {
	return &ResourceService[T, P]{api: api, collection: collection}
}

func (s *ResourceService[T, P]) List(ctx context.Context, params ListParams) (*ListResponse[T], error) {
	var resp ListResponse[T]
	if err := s.api.do(ctx, http.MethodGet, "/"+s.collection, params.Values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ResourceService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	var resp ItemResponse[T]
	if err := s.api.do(ctx, http.MethodGet, resourcePath(s.collection, id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *ResourceService[T, P]) Create(ctx context.Context, payload P) (*T, error) {
	var resp ItemResponse[T]
	if err := s.api.do(ctx, http.MethodPost, "/"+s.collection, nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *ResourceService[T, P]) Update(ctx context.Context, id string, payload P) (*T, error) {
	var resp ItemResponse[T]
	if err := s.api.do(ctx, http.MethodPut, resourcePath(s.collection, id), nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *ResourceService[T, P]) Delete(ctx context.Context, id string) error {
	return s.api.do(ctx, http.MethodDelete, resourcePath(s.collection, id), nil, nil, nil)
}

type (
	ProductService  = ResourceService[models.Product, models.ProductPayload]
	CategoryService = ResourceService[models.Category, models.CategoryPayload]
)

func NewProductService(api *APIClient) *ProductService {
	return NewResourceService[models.Product, models.ProductPayload](api, "products")
}

func NewCategoryService(api *APIClient) *CategoryService {
	return NewResourceService[models.Category, models.CategoryPayload](api, "categories")
}
