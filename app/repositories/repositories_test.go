package repositories

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductForm() ProductForm {
	return ProductForm{
		Name:          "Trail Runner",
		Description:   "Lightweight running shoe",
		Price:         "89.90",
		CategoryID:    "cat-1",
		StockQuantity: "12",
		IsActive:      true,
		Images:        []string{"https://cdn.example.com/shoe.png"},
	}
}

func TestProductSchema_Validate(t *testing.T) {
	schema := NewProductSchema(validator.New())

	tests := []struct {
		name      string
		mutate    func(f *ProductForm)
		wantMsg   string
		wantField string
	}{
		{"valid", func(*ProductForm) {}, "", ""},
		{"missing category", func(f *ProductForm) { f.CategoryID = "" }, "Please select a category", "category_id"},
		{"category checked before images", func(f *ProductForm) { f.CategoryID = ""; f.Images = nil }, "Please select a category", "category_id"},
		{"missing images", func(f *ProductForm) { f.Images = nil }, "Please add at least one product image", "images"},
		{"missing name", func(f *ProductForm) { f.Name = "" }, "Please fix the highlighted fields", "name"},
		{"negative price", func(f *ProductForm) { f.Price = "-1" }, "Please fix the highlighted fields", "price"},
		{"fractional stock", func(f *ProductForm) { f.StockQuantity = "1.5" }, "Please fix the highlighted fields", "stock_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validProductForm()
			tt.mutate(&f)
			verr := schema.Validate(f)
			if tt.wantMsg == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestProductForm_Payload(t *testing.T) {
	f := validProductForm()
	f.SKU = "  "
	p := f.Payload()

	assert.True(t, decimal.RequireFromString("89.90").Equal(p.Price))
	assert.Equal(t, models.Inventory{StockQuantity: 12, TrackInventory: true}, p.Inventory)
	assert.Empty(t, p.SKU)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"sku"`)
	assert.Contains(t, string(raw), `"price":89.9`)
}

func TestProductSchema_FromRow(t *testing.T) {
	row := models.Product{
		ID:         "p1",
		Name:       "Mug",
		Price:      decimal.RequireFromString("7.5"),
		CategoryID: "c1",
		Inventory:  models.Inventory{StockQuantity: 3},
		Images:     []string{"https://a/1.png"},
	}
	f := ProductSchema{}.FromRow(row)
	assert.Equal(t, "7.50", f.Price)
	assert.Equal(t, "3", f.StockQuantity)
	assert.Equal(t, "p1", ProductSchema{}.Key(row))
	assert.True(t, ProductSchema{}.Defaults().IsActive)
}

func TestCategoryForm_Payload(t *testing.T) {
	root := CategoryForm{Name: "Shoes"}.Payload()
	assert.Nil(t, root.ParentID)
	raw, err := json.Marshal(root)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"parent_id":null`)

	child := CategoryForm{Name: "Trail", ParentID: "c1"}.Payload()
	require.NotNil(t, child.ParentID)
	assert.Equal(t, "c1", *child.ParentID)

	assert.Equal(t, "home-and-garden", CategoryForm{Name: "Home & Garden"}.Slug())
}

func TestCategorySchema_Validate(t *testing.T) {
	schema := NewCategorySchema(validator.New())
	assert.Nil(t, schema.Validate(CategoryForm{Name: "Shoes"}))

	verr := schema.Validate(CategoryForm{})
	require.NotNil(t, verr)
	assert.Equal(t, "Name is required.", verr.Message)
}

func TestParentHelpers(t *testing.T) {
	parent := "c1"
	options := []models.Category{{ID: "c1", Name: "Shoes"}, {ID: "c2", Name: "Trail", ParentID: &parent}}

	assert.Equal(t, "Shoes", ParentName(options[1], options))
	assert.Equal(t, "-", ParentName(options[0], options))
	assert.Equal(t, []models.Category{{ID: "c1", Name: "Shoes"}}, ParentOptions(options, "c2"))
}

func TestOrderSchema_Validate(t *testing.T) {
	s := OrderSchema{}
	for _, st := range append(models.OrderStatuses, models.OrderStatusRefunded) {
		assert.Nil(t, s.Validate(models.StatusUpdate{Status: st}), st)
	}
	assert.NotNil(t, s.Validate(models.StatusUpdate{Status: "lost"}))
	assert.Equal(t, models.StatusUpdate{Status: "shipped", TrackingNumber: "TRK1"},
		s.FromRow(models.Order{Status: "shipped", TrackingNumber: "TRK1"}))
}

func TestOrderRepository_ListMapsQuery(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[{"id":"o1","order_number":"ORD-1","status":"pending","total_amount":"10.00"}],"pagination":{"page":2,"limit":20,"total":21,"total_pages":2}}`)
	}))
	defer srv.Close()

	repo := NewOrderRepository(services.NewOrderService(services.NewAPIClient(srv.URL, time.Second)))
	page, err := repo.List(context.Background(), listpage.Query{Page: 2, Limit: 20, Search: "ORD", Filter: "pending"})
	require.NoError(t, err)

	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, "pending", got.Get("status"))
	assert.Equal(t, "ORD", got.Get("order_number"))
	assert.Empty(t, got.Get("search"))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ORD-1", page.Items[0].OrderNumber)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 21, page.Total)
}

func TestUserRepository_Authenticate(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"admin", http.StatusOK, `{"data":{"token":"t1","user":{"id":"u1","email":"a@example.com","role":"admin"}}}`, nil},
		{"customer", http.StatusOK, `{"data":{"token":"t2","user":{"id":"u2","role":"customer"}}}`, ErrNotAdmin},
		{"bad password", http.StatusUnauthorized, `{"message":"invalid credentials"}`, ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/login", r.URL.Path)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			repo := NewUserRepository(services.NewAuthService(services.NewAPIClient(srv.URL, time.Second)))
			admin, err := repo.Authenticate(context.Background(), "a@example.com", "secret")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "t1", admin.Token)
			assert.True(t, admin.User.IsAdmin())
		})
	}
}
