package models

import "time"

// Investigation note types.
const (
	InvestigationTypeInitial            = "Initial"
	InvestigationTypeFollowUp           = "Follow-Up"
	InvestigationTypeEvidenceCollection = "Evidence Collection"
	InvestigationTypeInterview          = "Interview"
	InvestigationTypeFinalReport        = "Final Report"
)

// Investigation is a free-text investigator note tied to exactly one case
// and cascade-deleted with it.
type Investigation struct {
	InvestigationID uint      `json:"investigation_id" gorm:"primaryKey;autoIncrement;column:investigation_id"`
	CaseID          string    `json:"case_id" gorm:"column:case_id;size:13;not null;index"`
	CIDOfficerID    string    `json:"cid_officer_staff_id" gorm:"column:cid_officer_staff_id;size:20;not null"`
	Type            string    `json:"type" gorm:"column:type;size:30;not null"`
	Note            string    `json:"note" gorm:"column:note;type:text;not null"`
	InvestigatedAt  time.Time `json:"investigation_date" gorm:"column:investigation_date;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Investigation) TableName() string {
	return "investigations"
}
