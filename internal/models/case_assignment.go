package models

import "time"

// CaseAssignment is the history of who a case was handed to and why.
// Rows are appended on every assignment and cascade with the case.
type CaseAssignment struct {
	AssignmentID uint      `json:"assignment_id" gorm:"primaryKey;autoIncrement;column:assignment_id"`
	CaseID       string    `json:"case_id" gorm:"column:case_id;size:13;not null;index"`
	AssignedFrom *string   `json:"assigned_from" gorm:"column:assigned_from;size:20"`
	AssignedTo   string    `json:"assigned_to" gorm:"column:assigned_to;size:20;not null"`
	Reason       string    `json:"reason" gorm:"column:reason;size:500"`
	Status       string    `json:"status" gorm:"column:status;size:15;not null;default:Active"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Case Case `json:"-" gorm:"belongsTo;foreignKey:CaseID;constraint:OnDelete:CASCADE"`
}

func (CaseAssignment) TableName() string {
	return "case_assignments"
}
