package models

import "time"

// Staff roles.
const (
	RoleNCO   = "NCO"
	RoleCID   = "CID"
	RoleAdmin = "ADMIN"
)

// StaffAccount represents a system user (officer/admin). Rows are never
// deleted: cases, evidence, sessions and audit entries all reference staff,
// so deactivation is the only removal path.
type StaffAccount struct {
	StaffID      string     `json:"staff_id" gorm:"primaryKey;column:staff_id;size:20"`
	Surname      string     `json:"surname" gorm:"column:surname;size:100;not null"`
	OtherNames   string     `json:"other_names" gorm:"column:other_names;size:100;not null"`
	Role         string     `json:"role" gorm:"column:role;size:10;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;size:100;not null"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at" gorm:"column:last_login_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (StaffAccount) TableName() string {
	return "staff_accounts"
}
