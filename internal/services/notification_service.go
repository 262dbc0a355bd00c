package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/models"
)

// NotificationService is the read/ack side of the notification sink.
type NotificationService interface {
	// UnreadCount returns how many unread notifications staffID has.
	UnreadCount(ctx context.Context, staffID string) (int64, error)

	// List returns the staff member's notifications, newest first.
	List(ctx context.Context, staffID string, onlyUnread bool) ([]models.Notification, error)

	// MarkRead flags the given notifications as read. Only rows addressed
	// to staffID are touched; foreign ids are silently skipped.
	MarkRead(ctx context.Context, staffID string, ids []uint) error
}

type notificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) NotificationService {
	return &notificationService{db: db}
}

func (s *notificationService) UnreadCount(ctx context.Context, staffID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_staff_id = ? AND is_read = ?", staffID, false).
		Count(&count).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

func (s *notificationService) List(ctx context.Context, staffID string, onlyUnread bool) ([]models.Notification, error) {
	query := s.db.WithContext(ctx).Where("recipient_staff_id = ?", staffID)
	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, storageErr(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, staffID string, ids []uint) error {
	if len(ids) == 0 {
		return validationErr("no notification ids given")
	}
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_staff_id = ? AND notification_id IN ?", staffID, ids).
		Update("is_read", true).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}
