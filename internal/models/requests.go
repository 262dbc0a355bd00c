package models

import "time"

// JSON request bodies from the front-end, validated at the controller
// boundary with go-playground/validator tags.

type LoginRequest struct {
	StaffID  string `json:"staff_id" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type CreateStaffRequest struct {
	StaffID    string `json:"staff_id" validate:"required,max=20,alphanum"`
	Surname    string `json:"surname" validate:"required,max=100"`
	OtherNames string `json:"other_names" validate:"required,max=100"`
	Role       string `json:"role" validate:"required,oneof=NCO CID ADMIN"`
	Password   string `json:"password" validate:"required,min=8,max=128"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type CreateComplainantRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Age        int    `json:"age" validate:"omitempty,gte=1,lte=130"`
	Gender     string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	ContactNo  string `json:"contact_no" validate:"omitempty,max=30"`
	Address    string `json:"address" validate:"omitempty,max=300"`
	Occupation string `json:"occupation" validate:"omitempty,max=100"`
	Email      string `json:"email" validate:"omitempty,email,max=200"`
}

type CreateCrimeTypeRequest struct {
	Name             string `json:"name" validate:"required,max=150"`
	Description      string `json:"description" validate:"omitempty,max=500"`
	Severity         string `json:"severity" validate:"required,oneof=Low Medium High Critical"`
	BasePenaltyYears int    `json:"base_penalty_years" validate:"omitempty,gte=0"`
}

type CreateCaseRequest struct {
	ComplainantID    uint      `json:"complainant_id" validate:"required"`
	CrimeTypeID      uint      `json:"crime_type_id" validate:"required"`
	Title            string    `json:"title" validate:"required,max=300"`
	Description      string    `json:"description" validate:"omitempty"`
	IncidentAt       time.Time `json:"incident_at" validate:"omitempty"`
	IncidentLocation string    `json:"incident_location" validate:"omitempty,max=300"`
	Priority         string    `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
}

type AssignCaseRequest struct {
	OfficerStaffID string `json:"officer_staff_id" validate:"required,max=20"`
	Reason         string `json:"reason" validate:"required,max=500"`
}

type UpdateCaseRequest struct {
	Status   string `json:"status" validate:"required,oneof=Reported Assigned Investigating Closed"`
	Priority string `json:"priority" validate:"required,oneof=Low Medium High Critical"`
}

type CloseCaseRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type AddEvidenceRequest struct {
	Type            string `json:"type" validate:"required,oneof=Physical Digital Document Biological Photographic Video Audio Other"`
	Description     string `json:"description" validate:"omitempty,max=500"`
	StorageLocation string `json:"storage_location" validate:"omitempty,max=200"`
}

type TransferEvidenceRequest struct {
	ToStaffID   string `json:"to_staff_id" validate:"required,max=20"`
	NewLocation string `json:"new_location" validate:"required,max=200"`
	Note        string `json:"note" validate:"omitempty,max=500"`
}

type UpdateEvidenceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Collected 'Under Analysis' Submitted Archived"`
}

type AddInvestigationRequest struct {
	Type string `json:"type" validate:"required,oneof=Initial Follow-Up 'Evidence Collection' Interview 'Final Report'"`
	Note string `json:"note" validate:"required"`
}

type UpdateInvestigationRequest struct {
	Note string `json:"note" validate:"required"`
}

type MarkReadRequest struct {
	NotificationIDs []uint `json:"notification_ids" validate:"required,min=1"`
}

// PagedCases is the envelope returned by the paginated case listing.
type PagedCases struct {
	Cases         []CaseSummary `json:"cases"`
	TotalMatching int64         `json:"total_matching"`
	Page          int           `json:"page"`
	PageSize      int           `json:"page_size"`
}
