package repository

import (
	"context"
	"fmt"

	"delicassy/internal/domain"
	"delicassy/internal/store"
)

// ContentRepository covers the flat content records: packaging guides,
// the about story and notifications
type ContentRepository interface {
	CreatePackagingGuide(ctx context.Context, guide *domain.PackagingGuide) (string, error)
	ListPackagingGuides(ctx context.Context) ([]domain.PackagingGuide, error)
	CreateAbout(ctx context.Context, about *domain.About) (string, error)
	FindAbout(ctx context.Context) (*domain.About, error)
	CreateNotification(ctx context.Context, note *domain.Notification) (string, error)
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
}

type contentRepository struct {
	store store.Store
}

// NewContentRepository creates a new instance of ContentRepository
func NewContentRepository(s store.Store) ContentRepository {
	return &contentRepository{store: s}
}

func (r *contentRepository) CreatePackagingGuide(ctx context.Context, guide *domain.PackagingGuide) (string, error) {
	id, err := r.store.Insert(ctx, store.PackagingGuides, guide)
	if err != nil {
		return "", fmt.Errorf("failed to create packaging guide: %w", err)
	}
	return id, nil
}

func (r *contentRepository) ListPackagingGuides(ctx context.Context) ([]domain.PackagingGuide, error) {
	guides := []domain.PackagingGuide{}
	if err := r.store.Find(ctx, store.PackagingGuides, store.Query{}, &guides); err != nil {
		return nil, fmt.Errorf("failed to list packaging guides: %w", err)
	}
	return guides, nil
}

func (r *contentRepository) CreateAbout(ctx context.Context, about *domain.About) (string, error) {
	id, err := r.store.Insert(ctx, store.Abouts, about)
	if err != nil {
		return "", fmt.Errorf("failed to create about: %w", err)
	}
	return id, nil
}

// FindAbout returns the first stored about record, or nil when none exists
func (r *contentRepository) FindAbout(ctx context.Context) (*domain.About, error) {
	var abouts []domain.About
	if err := r.store.Find(ctx, store.Abouts, store.Query{Limit: 1}, &abouts); err != nil {
		return nil, fmt.Errorf("failed to find about: %w", err)
	}
	if len(abouts) == 0 {
		return nil, nil
	}
	return &abouts[0], nil
}

func (r *contentRepository) CreateNotification(ctx context.Context, note *domain.Notification) (string, error) {
	id, err := r.store.Insert(ctx, store.Notifications, note)
	if err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	return id, nil
}

func (r *contentRepository) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	notes := []domain.Notification{}
	if err := r.store.Find(ctx, store.Notifications, store.Where("user_id", userID), &notes); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notes, nil
}
