package service

import (
	"context"

	"delicassy/internal/domain"
	"delicassy/internal/notify"
	"delicassy/internal/repository"

	"go.uber.org/zap"
)

// ContentService defines the interface for packaging guides, the about
// story and user notifications
type ContentService interface {
	ListPackagingGuides(ctx context.Context) ([]domain.PackagingGuide, error)
	CreatePackagingGuide(ctx context.Context, guide *domain.PackagingGuide) (string, error)
	GetAbout(ctx context.Context) (*domain.About, error)
	CreateAbout(ctx context.Context, about *domain.About) (string, error)
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	CreateNotification(ctx context.Context, note *domain.Notification) (string, error)
	SubscribeNotifications(ctx context.Context, userID string) (<-chan domain.Notification, func(), error)
}

type contentService struct {
	contentRepo repository.ContentRepository
	broker      notify.Broker
	logger      *zap.Logger
}

// NewContentService creates a new instance of ContentService
func NewContentService(contentRepo repository.ContentRepository, broker notify.Broker, logger *zap.Logger) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		broker:      broker,
		logger:      logger,
	}
}

func (s *contentService) ListPackagingGuides(ctx context.Context) ([]domain.PackagingGuide, error) {
	return s.contentRepo.ListPackagingGuides(ctx)
}

func (s *contentService) CreatePackagingGuide(ctx context.Context, guide *domain.PackagingGuide) (string, error) {
	if err := domain.Validate(guide); err != nil {
		return "", invalid(err)
	}
	return s.contentRepo.CreatePackagingGuide(ctx, guide)
}

// GetAbout returns the stored about record, or the built-in story when
// none has been written yet
func (s *contentService) GetAbout(ctx context.Context) (*domain.About, error) {
	about, err := s.contentRepo.FindAbout(ctx)
	if err != nil {
		return nil, err
	}
	if about == nil {
		fallback := domain.DefaultAbout()
		return &fallback, nil
	}
	return about, nil
}

func (s *contentService) CreateAbout(ctx context.Context, about *domain.About) (string, error) {
	if about.Years == 0 {
		about.Years = 25
	}
	if len(about.Badges) == 0 {
		about.Badges = append([]string(nil), domain.DefaultBadges...)
	}
	return s.contentRepo.CreateAbout(ctx, about)
}

func (s *contentService) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.contentRepo.ListNotifications(ctx, userID)
}

// CreateNotification stores the notification and pushes it to live
// subscribers. A failed push is logged; the stored record stands.
func (s *contentService) CreateNotification(ctx context.Context, note *domain.Notification) (string, error) {
	if err := domain.Validate(note); err != nil {
		return "", invalid(err)
	}

	id, err := s.contentRepo.CreateNotification(ctx, note)
	if err != nil {
		return "", err
	}
	note.ID = id

	if s.broker != nil {
		if err := s.broker.Publish(ctx, *note); err != nil {
			s.logger.Warn("Failed to publish notification",
				zap.String("notification_id", id),
				zap.Error(err),
			)
		}
	}

	return id, nil
}

func (s *contentService) SubscribeNotifications(ctx context.Context, userID string) (<-chan domain.Notification, func(), error) {
	if s.broker == nil {
		return nil, nil, notify.ErrClosed
	}
	return s.broker.Subscribe(ctx, userID)
}
