package fakers

import (
	"strings"

	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

func CategoryFaker() repositories.CategoryForm {
	return repositories.CategoryForm{
		Name:        strings.Title(faker.Word()) + " " + uuid.NewString()[:4],
		Description: faker.Sentence(),
		IsActive:    true,
	}
}
