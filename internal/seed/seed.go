// Package seed loads a YAML fixture into the store through the services,
// so seeded records pass the same validation as API writes.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"delicassy/internal/domain"
	"delicassy/internal/repository"
	"delicassy/internal/service"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixture is the seed file layout. Keys follow the JSON field names of
// the API.
type Fixture struct {
	Categories    []domain.Category       `json:"categories"`
	Products      []ProductFixture        `json:"products"`
	Packaging     []domain.PackagingGuide `json:"packaging"`
	About         *domain.About           `json:"about"`
	Notifications []domain.Notification   `json:"notifications"`
	Users         []UserFixture           `json:"users"`
}

// ProductFixture is a product with reviews nested under it. Review
// product ids are filled in once the product is stored.
type ProductFixture struct {
	domain.Product
	Reviews []domain.Review `json:"reviews"`
}

type UserFixture struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
	DarkMode bool   `json:"dark_mode"`
	Role     string `json:"role"`
}

// Summary counts the records written by Apply
type Summary struct {
	Categories    int
	Products      int
	Reviews       int
	Packaging     int
	About         int
	Notifications int
	Users         int
	Skipped       int
}

// LoadFile reads a fixture from path
func LoadFile(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML fixture. The document is converted to JSON first
// so the domain types' json tags apply.
func Parse(raw []byte) (*Fixture, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert seed file: %w", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(encoded, &fixture); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &fixture, nil
}

// Apply writes the fixture. Products whose slug exists and users whose
// email is registered are skipped, so a fixture can be applied twice.
func Apply(ctx context.Context, services *service.Services, fixture *Fixture, logger *zap.Logger) (Summary, error) {
	var summary Summary

	for i := range fixture.Categories {
		if _, err := services.Catalog.CreateCategory(ctx, &fixture.Categories[i]); err != nil {
			return summary, fmt.Errorf("category %q: %w", fixture.Categories[i].Slug, err)
		}
		summary.Categories++
	}

	for i := range fixture.Products {
		p := &fixture.Products[i]
		id, err := services.Catalog.CreateProduct(ctx, &p.Product)
		if errors.Is(err, service.ErrSlugTaken) {
			logger.Info("Skipping existing product", zap.String("slug", p.Slug))
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("product %q: %w", p.Slug, err)
		}
		summary.Products++

		for j := range p.Reviews {
			p.Reviews[j].ProductID = id
			if _, err := services.Catalog.AddReview(ctx, &p.Reviews[j]); err != nil {
				return summary, fmt.Errorf("review for %q: %w", p.Slug, err)
			}
			summary.Reviews++
		}
	}

	for i := range fixture.Packaging {
		if _, err := services.Content.CreatePackagingGuide(ctx, &fixture.Packaging[i]); err != nil {
			return summary, fmt.Errorf("packaging guide %q: %w", fixture.Packaging[i].Title, err)
		}
		summary.Packaging++
	}

	if fixture.About != nil {
		if _, err := services.Content.CreateAbout(ctx, fixture.About); err != nil {
			return summary, fmt.Errorf("about: %w", err)
		}
		summary.About++
	}

	for i := range fixture.Notifications {
		if _, err := services.Content.CreateNotification(ctx, &fixture.Notifications[i]); err != nil {
			return summary, fmt.Errorf("notification %q: %w", fixture.Notifications[i].Title, err)
		}
		summary.Notifications++
	}

	for _, u := range fixture.Users {
		_, err := services.Users.Register(ctx, service.RegisterInput{
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
			Language: u.Language,
			DarkMode: u.DarkMode,
			Role:     u.Role,
		})
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("user %q: %w", u.Email, err)
		}
		summary.Users++
	}

	logger.Info("Seed applied",
		zap.Int("categories", summary.Categories),
		zap.Int("products", summary.Products),
		zap.Int("reviews", summary.Reviews),
		zap.Int("packaging", summary.Packaging),
		zap.Int("notifications", summary.Notifications),
		zap.Int("users", summary.Users),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}
