package models

import "time"

// Audit action kinds.
const (
	ActionCreateCase          = "CREATE_CASE"
	ActionAssignCase          = "ASSIGN_CASE"
	ActionUpdateCase          = "UPDATE_CASE"
	ActionCloseCase           = "CLOSE_CASE"
	ActionAddEvidence         = "ADD_EVIDENCE"
	ActionTransferEvidence    = "TRANSFER_EVIDENCE"
	ActionUpdateEvidence      = "UPDATE_EVIDENCE_STATUS"
	ActionAddInvestigation    = "ADD_INVESTIGATION"
	ActionUpdateInvestigation = "UPDATE_INVESTIGATION"
	ActionCreateStaff         = "CREATE_STAFF"
	ActionDeactivateStaff     = "DEACTIVATE_STAFF"
	ActionActivateStaff       = "ACTIVATE_STAFF"
	ActionResetPassword       = "RESET_PASSWORD"
	ActionCreateComplainant   = "CREATE_COMPLAINANT"
	ActionCreateCrimeType     = "CREATE_CRIME_TYPE"
)

// AuditLog is the append-only system of record for "who did what". Entries
// are written in the same transaction as the mutation they describe; a
// failed audit write rolls the whole operation back.
type AuditLog struct {
	AuditID      uint      `json:"audit_id" gorm:"primaryKey;autoIncrement;column:audit_id"`
	ActorStaffID string    `json:"actor_staff_id" gorm:"column:actor_staff_id;size:20;not null;index"`
	Action       string    `json:"action" gorm:"column:action;size:30;not null;index"`
	TargetTable  string    `json:"target_table" gorm:"column:target_table;size:40;not null"`
	TargetID     string    `json:"target_id" gorm:"column:target_id;size:40;not null"`
	Detail       string    `json:"detail" gorm:"column:detail;type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
