package helpers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors(t *testing.T) {
	type form struct {
		Email      string `validate:"required,email"`
		CategoryID string `validate:"required"`
		Quantity   int    `validate:"gte=0"`
	}

	err := validator.New().Struct(form{Email: "nope", Quantity: -1})
	msgs, ok := ValidationMessages(err)
	require.True(t, ok)

	assert.Equal(t, "Email must be a valid email address.", msgs["email"])
	assert.Equal(t, "Category id is required.", msgs["category_id"])
	assert.Equal(t, "Quantity must be 0 or more.", msgs["quantity"])
}

func TestFieldKey(t *testing.T) {
	tests := map[string]string{
		"Name":          "name",
		"CategoryID":    "category_id",
		"StockQuantity": "stock_quantity",
		"SKU":           "sku",
		"ParentID":      "parent_id",
	}
	for in, want := range tests {
		assert.Equal(t, want, fieldKey(in), in)
	}
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "running-shoes", GenerateSlug("  Running Shoes "))
	assert.Equal(t, "home-and-garden", GenerateSlug("Home & Garden"))
}

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, 3, ParsePositiveInt("3", 1))
	assert.Equal(t, 1, ParsePositiveInt("0", 1))
	assert.Equal(t, 1, ParsePositiveInt("-2", 1))
	assert.Equal(t, 1, ParsePositiveInt("abc", 1))
	assert.Equal(t, 20, ParsePositiveInt("", 20))
}
