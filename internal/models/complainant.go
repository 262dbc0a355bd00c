package models

import "time"

// Complainant is reference data registered when a complaint is filed.
// Deletion is restricted while any case references it.
type Complainant struct {
	ComplainantID uint      `json:"complainant_id" gorm:"primaryKey;autoIncrement;column:complainant_id"`
	Name          string    `json:"name" gorm:"column:name;size:200;not null"`
	Age           int       `json:"age" gorm:"column:age"`
	Gender        string    `json:"gender" gorm:"column:gender;size:10"`
	ContactNo     string    `json:"contact_no" gorm:"column:contact_no;size:30"`
	Address       string    `json:"address" gorm:"column:address;size:300"`
	Occupation    string    `json:"occupation" gorm:"column:occupation;size:100"`
	Email         string    `json:"email" gorm:"column:email;size:200"`
	RegisteredBy  string    `json:"registered_by" gorm:"column:registered_by;size:20"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Complainant) TableName() string {
	return "complainants"
}
