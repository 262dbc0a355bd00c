package models

import "time"

// CrimeType is reference data describing an offence category.
// Deletion is restricted while any case references it.
type CrimeType struct {
	CrimeTypeID      uint      `json:"crime_type_id" gorm:"primaryKey;autoIncrement;column:crime_type_id"`
	Name             string    `json:"name" gorm:"column:name;size:150;not null"`
	Description      string    `json:"description" gorm:"column:description;size:500"`
	Severity         string    `json:"severity" gorm:"column:severity;size:10;not null"`
	BasePenaltyYears int       `json:"base_penalty_years" gorm:"column:base_penalty_years"`
	CreatedBy        string    `json:"created_by" gorm:"column:created_by;size:20"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (CrimeType) TableName() string {
	return "crime_types"
}
