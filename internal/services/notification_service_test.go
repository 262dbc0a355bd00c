package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/models"
)

func seedNotification(t *testing.T, db *gorm.DB, recipient, message string, createdAt time.Time, read bool) uint {
	t.Helper()
	n := models.Notification{
		RecipientStaffID: recipient,
		Message:          message,
		Type:             models.NotificationTypeCase,
		IsRead:           read,
		CreatedAt:        createdAt,
	}
	require.NoError(t, db.Create(&n).Error)
	return n.NotificationID
}

func TestNotificationUnreadCountAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)
	seedStaff(t, db, "STF201", models.RoleCID, "correct-horse", true)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	seedNotification(t, db, "STF101", "oldest", base, true)
	seedNotification(t, db, "STF101", "middle", base.Add(time.Hour), false)
	seedNotification(t, db, "STF101", "newest", base.Add(2*time.Hour), false)
	seedNotification(t, db, "STF201", "someone else's", base, false)

	count, err := svc.UnreadCount(context.Background(), "STF101")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	all, err := svc.List(context.Background(), "STF101", false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Message)
	assert.Equal(t, "oldest", all[2].Message)

	unread, err := svc.List(context.Background(), "STF101", true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)
}

func TestMarkRead_ScopedToRecipient(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)
	seedStaff(t, db, "STF201", models.RoleCID, "correct-horse", true)

	now := time.Now()
	mine := seedNotification(t, db, "STF101", "mine", now, false)
	theirs := seedNotification(t, db, "STF201", "theirs", now, false)

	// passing someone else's id must not flip their notification
	require.NoError(t, svc.MarkRead(context.Background(), "STF101", []uint{mine, theirs}))

	var stored models.Notification
	require.NoError(t, db.First(&stored, "notification_id = ?", mine).Error)
	assert.True(t, stored.IsRead)
	// fresh struct: reusing stored would add its primary key to the query
	var storedTheirs models.Notification
	require.NoError(t, db.First(&storedTheirs, "notification_id = ?", theirs).Error)
	assert.False(t, storedTheirs.IsRead)

	err := svc.MarkRead(context.Background(), "STF101", nil)
	assert.ErrorIs(t, err, ErrValidation)
}
