// Package repositories adapts the backend API to the list-page controller:
// each resource gets a store (list and mutations) and a form schema.
package repositories

import (
	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
)

// OptionsLimit is the page size used to fill select boxes.
const OptionsLimit = 100

func toPage[T any](resp *services.ListResponse[T]) listpage.Page[T] {
	return listpage.Page[T]{
		Items:      resp.Data,
		Total:      resp.Pagination.Total,
		TotalPages: resp.Pagination.TotalPages,
	}
}

func fieldErrors(fields map[string]string, message string) *listpage.ValidationError {
	return &listpage.ValidationError{Message: message, Fields: fields}
}
