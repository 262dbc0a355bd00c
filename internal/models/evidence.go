package models

import "time"

// Evidence custody statuses.
const (
	EvidenceStatusCollected     = "Collected"
	EvidenceStatusUnderAnalysis = "Under Analysis"
	EvidenceStatusSubmitted     = "Submitted"
	EvidenceStatusArchived      = "Archived"
)

// Evidence types as captured at intake.
const (
	EvidenceTypePhysical     = "Physical"
	EvidenceTypeDigital      = "Digital"
	EvidenceTypeDocument     = "Document"
	EvidenceTypeBiological   = "Biological"
	EvidenceTypePhotographic = "Photographic"
	EvidenceTypeVideo        = "Video"
	EvidenceTypeAudio        = "Audio"
	EvidenceTypeOther        = "Other"
)

// ValidEvidenceStatus reports whether s is one of the custody statuses.
func ValidEvidenceStatus(s string) bool {
	switch s {
	case EvidenceStatusCollected, EvidenceStatusUnderAnalysis,
		EvidenceStatusSubmitted, EvidenceStatusArchived:
		return true
	}
	return false
}

// Evidence is a physical or digital item tied to a case. Every custody
// status change is audited and notifies the current custodian.
type Evidence struct {
	EvidenceID      uint      `json:"evidence_id" gorm:"primaryKey;autoIncrement;column:evidence_id"`
	ReferenceCode   string    `json:"reference_code" gorm:"column:reference_code;size:30;not null;uniqueIndex"`
	CaseID          string    `json:"case_id" gorm:"column:case_id;size:13;not null;index"`
	Type            string    `json:"type" gorm:"column:type;size:20;not null"`
	Description     string    `json:"description" gorm:"column:description;size:500"`
	CollectedBy     string    `json:"collected_by" gorm:"column:collected_by;size:20;not null"`
	CustodianID     string    `json:"custodian_staff_id" gorm:"column:custodian_staff_id;size:20;not null"`
	Status          string    `json:"status" gorm:"column:status;size:20;not null;index"`
	StorageLocation string    `json:"storage_location" gorm:"column:storage_location;size:200"`
	CollectedAt     time.Time `json:"collected_at" gorm:"column:collected_at;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Evidence) TableName() string {
	return "evidence"
}
