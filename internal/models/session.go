package models

import "time"

// Session is a time-bounded authenticated context issued after a successful
// login. A session leaves the active state exactly once: either through an
// explicit logout or when the expiry sweep finds it idle past its timeout.
type Session struct {
	Token          string     `json:"token" gorm:"primaryKey;column:token;size:120"`
	StaffID        string     `json:"staff_id" gorm:"column:staff_id;size:20;not null;index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	LastActivityAt time.Time  `json:"last_activity_at" gorm:"column:last_activity_at;not null"`
	TimeoutMinutes int        `json:"timeout_minutes" gorm:"column:timeout_minutes;not null;default:480"`
	IsActive       bool       `json:"is_active" gorm:"column:is_active;not null;default:true;index"`
	LoggedOutAt    *time.Time `json:"logged_out_at" gorm:"column:logged_out_at"`

	Staff StaffAccount `json:"-" gorm:"belongsTo;foreignKey:StaffID;references:StaffID"`
}

func (Session) TableName() string {
	return "sessions"
}
