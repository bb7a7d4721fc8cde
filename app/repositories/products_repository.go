package repositories

import (
	"context"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ProductRepositoryImpl interface {
	List(ctx context.Context, q listpage.Query) (listpage.Page[models.Product], error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, form ProductForm) error
	Update(ctx context.Context, id string, form ProductForm) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	svc *services.ProductService
}

func NewProductRepository(svc *services.ProductService) ProductRepositoryImpl {
	return &productRepository{svc: svc}
}

func (p *productRepository) List(ctx context.Context, q listpage.Query) (listpage.Page[models.Product], error) {
	resp, err := p.svc.List(ctx, services.ListParams{
		Page:       q.Page,
		Limit:      q.Limit,
		Search:     q.Search,
		CategoryID: q.Filter,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
	})
	if err != nil {
		return listpage.Page[models.Product]{}, err
	}
	return toPage(resp), nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return p.svc.Get(ctx, id)
}

func (p *productRepository) Create(ctx context.Context, form ProductForm) error {
	_, err := p.svc.Create(ctx, form.Payload())
	return err
}

func (p *productRepository) Update(ctx context.Context, id string, form ProductForm) error {
	_, err := p.svc.Update(ctx, id, form.Payload())
	return err
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.svc.Delete(ctx, id)
}

// ProductForm holds the modal values as typed by the admin.
type ProductForm struct {
	Name          string   `form:"name" validate:"required,min=2,max=200"`
	Description   string   `form:"description" validate:"max=5000"`
	Price         string   `form:"price" validate:"required,numeric"`
	SKU           string   `form:"sku" validate:"omitempty,max=64"`
	CategoryID    string   `form:"category_id"`
	StockQuantity string   `form:"stock_quantity" validate:"required,numeric"`
	IsActive      bool     `form:"is_active"`
	IsFeatured    bool     `form:"is_featured"`
	Images        []string `form:"images"`
}

// Payload converts the form for the API. It expects a form that passed
// validation; unparsable numbers become zero.
func (f ProductForm) Payload() models.ProductPayload {
	price, _ := decimal.NewFromString(strings.TrimSpace(f.Price))
	stock, _ := strconv.Atoi(strings.TrimSpace(f.StockQuantity))
	return models.ProductPayload{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		CategoryID:  f.CategoryID,
		SKU:         strings.TrimSpace(f.SKU),
		IsActive:    f.IsActive,
		IsFeatured:  f.IsFeatured,
		Images:      append([]string{}, f.Images...),
		Inventory: models.Inventory{
			StockQuantity:  stock,
			TrackInventory: true,
		},
	}
}

type ProductSchema struct {
	validate *validator.Validate
}

func NewProductSchema(v *validator.Validate) ProductSchema {
	return ProductSchema{validate: v}
}

func (ProductSchema) Key(p models.Product) string { return p.ID }

func (ProductSchema) Defaults() ProductForm {
	return ProductForm{IsActive: true}
}

func (ProductSchema) FromRow(p models.Product) ProductForm {
	return ProductForm{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		StockQuantity: strconv.Itoa(p.Inventory.StockQuantity),
		IsActive:      p.IsActive,
		IsFeatured:    p.IsFeatured,
		Images:        append([]string{}, p.Images...),
	}
}

// Validate checks category and images first, with the messages the console
// has always shown for them, then the remaining fields.
func (s ProductSchema) Validate(f ProductForm) *listpage.ValidationError {
	if strings.TrimSpace(f.CategoryID) == "" {
		return fieldErrors(map[string]string{"category_id": "Category is required."}, "Please select a category")
	}
	if len(f.Images) == 0 {
		return fieldErrors(map[string]string{"images": "At least one image is required."}, "Please add at least one product image")
	}

	fields := map[string]string{}
	if err := s.validate.Struct(f); err != nil {
		if msgs, ok := helpers.ValidationMessages(err); ok {
			fields = msgs
		}
	}
	if _, ok := fields["price"]; !ok {
		if price, err := decimal.NewFromString(strings.TrimSpace(f.Price)); err != nil || price.IsNegative() {
			fields["price"] = "Price must be 0 or more."
		}
	}
	if _, ok := fields["stock_quantity"]; !ok {
		if stock, err := strconv.Atoi(strings.TrimSpace(f.StockQuantity)); err != nil || stock < 0 {
			fields["stock_quantity"] = "Stock quantity must be a whole number, 0 or more."
		}
	}
	if len(fields) > 0 {
		return fieldErrors(fields, "Please fix the highlighted fields")
	}
	return nil
}
