package models

import "time"

// Case statuses. The lifecycle is forward-only:
// Reported → Assigned → Investigating → Closed.
const (
	CaseStatusReported      = "Reported"
	CaseStatusAssigned      = "Assigned"
	CaseStatusInvestigating = "Investigating"
	CaseStatusClosed        = "Closed"
)

// Case priorities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// caseStatusRank orders the lifecycle so transitions can be validated as
// forward-only. Equal ranks (re-stating the current status) are allowed.
var caseStatusRank = map[string]int{
	CaseStatusReported:      0,
	CaseStatusAssigned:      1,
	CaseStatusInvestigating: 2,
	CaseStatusClosed:        3,
}

// ValidCaseStatus reports whether s is one of the closed set of statuses.
func ValidCaseStatus(s string) bool {
	_, ok := caseStatusRank[s]
	return ok
}

// ValidCaseTransition reports whether moving from to next is a legal
// forward (or same-status) transition.
func ValidCaseTransition(from, next string) bool {
	a, okA := caseStatusRank[from]
	b, okB := caseStatusRank[next]
	return okA && okB && b >= a
}

// ValidPriority reports whether p is one of the closed set of priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Case is a tracked criminal investigation record. It exclusively owns its
// Evidence and Investigation rows (cascade), while staff references are
// plain associations. Invariant: ClosedAt is set iff Status == Closed.
type Case struct {
	CaseID           string     `json:"case_id" gorm:"primaryKey;column:case_id;size:13"`
	ComplainantID    uint       `json:"complainant_id" gorm:"column:complainant_id;not null"`
	CrimeTypeID      uint       `json:"crime_type_id" gorm:"column:crime_type_id;not null"`
	Title            string     `json:"title" gorm:"column:title;size:300;not null"`
	Description      string     `json:"description" gorm:"column:description;type:text"`
	IncidentAt       time.Time  `json:"incident_at" gorm:"column:incident_at"`
	IncidentLocation string     `json:"incident_location" gorm:"column:incident_location;size:300"`
	Priority         string     `json:"priority" gorm:"column:priority;size:10;not null;default:Medium"`
	Status           string     `json:"status" gorm:"column:status;size:15;not null;index"`
	NCOStaffID       string     `json:"nco_staff_id" gorm:"column:nco_staff_id;size:20;not null"`
	CIDOfficerID     *string    `json:"cid_officer_staff_id" gorm:"column:cid_officer_staff_id;size:20"`
	AssignedAt       *time.Time `json:"assigned_at" gorm:"column:assigned_at"`
	ClosedAt         *time.Time `json:"closed_at" gorm:"column:closed_at"`
	ClosedBy         *string    `json:"closed_by" gorm:"column:closed_by;size:20"`
	ClosureReason    *string    `json:"closure_reason" gorm:"column:closure_reason;size:500"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Complainant    Complainant     `json:"complainant" gorm:"belongsTo;foreignKey:ComplainantID;constraint:OnDelete:RESTRICT"`
	CrimeType      CrimeType       `json:"crime_type" gorm:"belongsTo;foreignKey:CrimeTypeID;constraint:OnDelete:RESTRICT"`
	CIDOfficer     *StaffAccount   `json:"-" gorm:"foreignKey:CIDOfficerID;references:StaffID;constraint:OnDelete:SET NULL"`
	Evidence       []Evidence      `json:"-" gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
	Investigations []Investigation `json:"-" gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
}

func (Case) TableName() string {
	return "cases"
}

// CaseSummary is the trimmed row shape returned by search and listing.
type CaseSummary struct {
	CaseID    string    `json:"case_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}
