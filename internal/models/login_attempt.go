package models

import "time"

// Login attempt outcomes and failure reasons.
const (
	LoginOutcomeSuccess = "SUCCESS"
	LoginOutcomeFailed  = "FAILED"

	LoginFailureUserNotFound       = "USER_NOT_FOUND"
	LoginFailureInactive           = "INACTIVE"
	LoginFailureInvalidCredentials = "INVALID_CREDENTIALS"
)

// LoginAttempt is the append-only record of every authentication attempt,
// successful or not. StaffID is stored as given by the caller, without a
// foreign key, so attempts against unknown ids are kept too.
type LoginAttempt struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	StaffID       string    `json:"staff_id" gorm:"column:staff_id;size:20;not null;index"`
	Outcome       string    `json:"outcome" gorm:"column:outcome;size:10;not null"`
	FailureReason *string   `json:"failure_reason" gorm:"column:failure_reason;size:30"`
	Origin        string    `json:"origin" gorm:"column:origin;size:100"`
	AttemptedAt   time.Time `json:"attempted_at" gorm:"column:attempted_at;not null;index"`
}

func (LoginAttempt) TableName() string {
	return "login_attempts"
}
