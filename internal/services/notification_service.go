package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"nanotasks/internal/models"
)

// NotificationService stores fire-and-forget notifications. A failed write
// is logged and dropped; notifications are never part of a ledger
// transaction.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify records a notification for a user. Best-effort.
func (s *NotificationService) Notify(ctx context.Context, toEmail, message, actionRoute string) {
	notification := &models.Notification{
		ToEmail:     toEmail,
		Message:     message,
		ActionRoute: actionRoute,
	}
	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		log.Printf("Warning: failed to store notification for %s: %v", toEmail, err)
	}
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, email string) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.WithContext(ctx).
		Where("to_email = ?", email).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllRead marks every notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("to_email = ? AND read = ?", email, false).
		Update("read", true).Error
}
