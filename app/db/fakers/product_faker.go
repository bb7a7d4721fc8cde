package fakers

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// ProductFaker builds a random, valid product form in categoryID.
func ProductFaker(categoryID string) repositories.ProductForm {
	name := strings.Title(faker.Word() + " " + faker.Word())
	sku := strings.ToUpper(slug.Make(name + "-" + uuid.NewString()[:6]))

	numImages := rand.Intn(3) + 1
	images := make([]string, numImages)
	for i := range images {
		images[i] = fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", slug.Make(sku), i)
	}

	return repositories.ProductForm{
		Name:          name,
		Description:   faker.Paragraph(),
		Price:         decimal.NewFromFloat(fakePrice()).StringFixed(2),
		SKU:           sku,
		CategoryID:    categoryID,
		StockQuantity: strconv.Itoa(rand.Intn(50)),
		IsActive:      rand.Intn(5) > 0,
		IsFeatured:    rand.Intn(4) == 0,
		Images:        images,
	}
}

func fakePrice() float64 {
	return precision(1+rand.Float64()*math.Pow10(rand.Intn(4)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
