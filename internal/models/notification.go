package models

import "time"

// Notification types.
const (
	NotificationTypeCase          = "CASE"
	NotificationTypeEvidence      = "EVIDENCE"
	NotificationTypeInvestigation = "INVESTIGATION"
	NotificationTypeAccount       = "ACCOUNT"
)

// Notification is an addressed, read-trackable message created as a side
// effect of a mutation. Only the recipient mutates it, by marking it read.
type Notification struct {
	NotificationID   uint      `json:"notification_id" gorm:"primaryKey;autoIncrement;column:notification_id"`
	RecipientStaffID string    `json:"recipient_staff_id" gorm:"column:recipient_staff_id;size:20;not null;index:idx_notifications_recipient_unread,priority:1"`
	CaseID           *string   `json:"case_id" gorm:"column:case_id;size:13"`
	RelatedID        *string   `json:"related_id" gorm:"column:related_id;size:40"`
	Message          string    `json:"message" gorm:"column:message;size:500;not null"`
	Type             string    `json:"type" gorm:"column:type;size:20;not null"`
	IsRead           bool      `json:"is_read" gorm:"column:is_read;not null;default:false;index:idx_notifications_recipient_unread,priority:2"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
