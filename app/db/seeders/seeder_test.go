package seeders

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-admin/app/models"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategories struct {
	repositories.CategoryRepositoryImpl
	created []repositories.CategoryForm
}

func (f *fakeCategories) Create(_ context.Context, form repositories.CategoryForm) error {
	f.created = append(f.created, form)
	return nil
}

func (f *fakeCategories) GetAll(context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(f.created))
	for i, c := range f.created {
		out[i] = models.Category{ID: string(rune('a' + i)), Name: c.Name}
	}
	return out, nil
}

type fakeProducts struct {
	repositories.ProductRepositoryImpl
	created []repositories.ProductForm
	failAt  int
}

func (f *fakeProducts) Create(_ context.Context, form repositories.ProductForm) error {
	if f.failAt > 0 && len(f.created)+1 == f.failAt {
		return errors.New("boom")
	}
	f.created = append(f.created, form)
	return nil
}

func TestSeeder_Seed(t *testing.T) {
	cats := &fakeCategories{}
	prods := &fakeProducts{}

	done, err := Seeder{Categories: cats, Products: prods}.Seed(context.Background(), Counts{Categories: 2, Products: 5})
	require.NoError(t, err)
	assert.Equal(t, Counts{Categories: 2, Products: 5}, done)

	assert.Equal(t, "a", prods.created[0].CategoryID)
	assert.Equal(t, "b", prods.created[1].CategoryID)
	assert.Equal(t, "a", prods.created[4].CategoryID)
}

func TestSeeder_SeedStopsOnFailure(t *testing.T) {
	cats := &fakeCategories{}
	prods := &fakeProducts{failAt: 3}

	done, err := Seeder{Categories: cats, Products: prods}.Seed(context.Background(), Counts{Categories: 1, Products: 5})
	assert.Error(t, err)
	assert.Equal(t, Counts{Categories: 1, Products: 2}, done)
}

func TestSeeder_SeedWithoutCategories(t *testing.T) {
	_, err := Seeder{Categories: &fakeCategories{}, Products: &fakeProducts{}}.Seed(context.Background(), Counts{Products: 1})
	assert.Error(t, err)
}
