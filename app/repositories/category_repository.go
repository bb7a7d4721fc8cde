package repositories

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-admin/app/listpage"
	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/go-playground/validator/v10"
)

type CategoryRepositoryImpl interface {
	List(ctx context.Context, q listpage.Query) (listpage.Page[models.Category], error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, form CategoryForm) error
	Update(ctx context.Context, id string, form CategoryForm) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	svc *services.CategoryService
}

func NewCategoryRepository(svc *services.CategoryService) CategoryRepositoryImpl {
	return &categoryRepository{svc: svc}
}

func (r *categoryRepository) List(ctx context.Context, q listpage.Query) (listpage.Page[models.Category], error) {
	resp, err := r.svc.List(ctx, services.ListParams{
		Page:      q.Page,
		Limit:     q.Limit,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return listpage.Page[models.Category]{}, err
	}
	return toPage(resp), nil
}

// GetAll returns the first OptionsLimit categories, enough to fill the
// category and parent select boxes.
func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	resp, err := r.svc.List(ctx, services.ListParams{Page: 1, Limit: OptionsLimit})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.svc.Get(ctx, id)
}

func (r *categoryRepository) Create(ctx context.Context, form CategoryForm) error {
	_, err := r.svc.Create(ctx, form.Payload())
	return err
}

func (r *categoryRepository) Update(ctx context.Context, id string, form CategoryForm) error {
	_, err := r.svc.Update(ctx, id, form.Payload())
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.svc.Delete(ctx, id)
}

type CategoryForm struct {
	Name        string `form:"name" validate:"required,min=2,max=100"`
	Description string `form:"description" validate:"max=1000"`
	ParentID    string `form:"parent_id"`
	IsActive    bool   `form:"is_active"`
}

// Slug previews the slug the backend will derive from the name.
func (f CategoryForm) Slug() string {
	return helpers.GenerateSlug(f.Name)
}

func (f CategoryForm) Payload() models.CategoryPayload {
	payload := models.CategoryPayload{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		IsActive:    f.IsActive,
	}
	if parent := strings.TrimSpace(f.ParentID); parent != "" {
		payload.ParentID = &parent
	}
	return payload
}

type CategorySchema struct {
	validate *validator.Validate
}

func NewCategorySchema(v *validator.Validate) CategorySchema {
	return CategorySchema{validate: v}
}

func (CategorySchema) Key(c models.Category) string { return c.ID }

func (CategorySchema) Defaults() CategoryForm {
	return CategoryForm{IsActive: true}
}

func (CategorySchema) FromRow(c models.Category) CategoryForm {
	return CategoryForm{
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.Parent(),
		IsActive:    c.IsActive,
	}
}

func (s CategorySchema) Validate(f CategoryForm) *listpage.ValidationError {
	if err := s.validate.Struct(f); err != nil {
		if msgs, ok := helpers.ValidationMessages(err); ok {
			msg := "Please fix the highlighted fields"
			if m, ok := msgs["name"]; ok {
				msg = m
			}
			return fieldErrors(msgs, msg)
		}
		return fieldErrors(nil, err.Error())
	}
	return nil
}

// ParentName resolves a parent id against options, "-" when it has none.
func ParentName(c models.Category, options []models.Category) string {
	parent := c.Parent()
	if parent == "" {
		return "-"
	}
	for _, o := range options {
		if o.ID == parent {
			return o.Name
		}
	}
	return "-"
}

// ParentOptions are the categories that may become the parent of the one
// identified by selfID.
func ParentOptions(options []models.Category, selfID string) []models.Category {
	out := make([]models.Category, 0, len(options))
	for _, o := range options {
		if o.ID != selfID {
			out = append(out, o)
		}
	}
	return out
}
