package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-ecommerce-admin/app/db/fakers"
	"github.com/Rakhulsr/go-ecommerce-admin/app/repositories"
)

// Seeder fills a backend with demo catalogue data through the same
// repositories the console uses.
type Seeder struct {
	Categories repositories.CategoryRepositoryImpl
	Products   repositories.ProductRepositoryImpl
}

type Counts struct {
	Categories int
	Products   int
}

// Seed creates c.Categories categories, then c.Products products spread over
// every category the backend returns. ctx must carry an admin token.
func (s Seeder) Seed(ctx context.Context, c Counts) (Counts, error) {
	var done Counts
	for i := 0; i < c.Categories; i++ {
		if err := s.Categories.Create(ctx, fakers.CategoryFaker()); err != nil {
			return done, fmt.Errorf("failed to create category %d: %w", i+1, err)
		}
		done.Categories++
	}
	if c.Products == 0 {
		return done, nil
	}

	categories, err := s.Categories.GetAll(ctx)
	if err != nil {
		return done, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return done, fmt.Errorf("no categories to attach products to")
	}

	for i := 0; i < c.Products; i++ {
		category := categories[i%len(categories)]
		form := fakers.ProductFaker(category.ID)
		if err := s.Products.Create(ctx, form); err != nil {
			return done, fmt.Errorf("failed to create product %q: %w", form.Name, err)
		}
		done.Products++
	}
	log.Printf("Seeder.Seed: created %d categories and %d products", done.Categories, done.Products)
	return done, nil
}
