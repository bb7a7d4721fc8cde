package other

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name                 string
		current, total, size int
		want                 []int
	}{
		{"no pages", 1, 0, 5, nil},
		{"fewer than window", 2, 3, 5, []int{1, 2, 3}},
		{"centred", 5, 10, 5, []int{3, 4, 5, 6, 7}},
		{"clamped at start", 1, 10, 5, []int{1, 2, 3, 4, 5}},
		{"clamped at end", 10, 10, 5, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total, tt.size))
		})
	}
}

func TestPagination_URL(t *testing.T) {
	p := Pagination{
		Page:       2,
		TotalPages: 4,
		BasePath:   "/admin/orders",
		Query:      url.Values{"status": {"pending"}, "page": {"2"}},
	}
	assert.Equal(t, "/admin/orders?page=3&status=pending", p.URL(3))
	assert.Equal(t, "/admin/orders?status=pending", p.URL(1))
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.True(t, p.Visible())

	empty := Pagination{BasePath: "/admin/products", Page: 1, TotalPages: 1}
	assert.Equal(t, "/admin/products", empty.URL(1))
	assert.False(t, empty.Visible())
}
