package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/idgen"
	"github.com/sivamiruthula/crime-management/internal/models"
)

// caseIDRetries bounds the re-allocation attempts when a concurrent writer
// outside this process claims the same case id first.
const caseIDRetries = 3

// CaseService owns the case lifecycle: creation, assignment, status and
// priority transitions, closure, and the read-only query surface.
type CaseService interface {
	// CreateCase registers a new case with status Reported and a freshly
	// allocated date-scoped id.
	CreateCase(ctx context.Context, req *models.CreateCaseRequest, createdBy string) (*models.Case, error)

	// AssignCase hands the case to a CID officer, moves it to Assigned
	// and appends an assignment-history row.
	AssignCase(ctx context.Context, caseID, officerID, reason, assignedBy string) error

	// UpdateCase overwrites status and priority. Transitions are
	// validated forward-only over the closed status enum.
	UpdateCase(ctx context.Context, caseID, status, priority, updatedBy string) error

	// CloseCase moves the case to Closed and stamps the closure time.
	CloseCase(ctx context.Context, caseID, closedBy, reason string) error

	// SearchCases matches keyword case-insensitively against title and
	// description.
	SearchCases(ctx context.Context, keyword string) ([]models.CaseSummary, error)

	// ListCases returns one 1-indexed page ordered by creation time
	// descending, plus the total count over the same filter.
	ListCases(ctx context.Context, page, pageSize int, statusFilter string) (*models.PagedCases, error)

	// DashboardStats returns the headline aggregates for the dashboard.
	DashboardStats(ctx context.Context) (map[string]int64, error)
}

type caseService struct {
	db     *gorm.DB
	sink   *Sink
	alloc  *idgen.CaseAllocator
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewCaseService injects the database, the audit sink and the shared case
// id allocator.
func NewCaseService(db *gorm.DB, sink *Sink, alloc *idgen.CaseAllocator, logger *zap.SugaredLogger) CaseService {
	return &caseService{db: db, sink: sink, alloc: alloc, logger: logger, now: time.Now}
}

func (s *caseService) CreateCase(ctx context.Context, req *models.CreateCaseRequest, createdBy string) (*models.Case, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, validationErr("unknown priority %q", priority)
	}

	now := s.now()

	var created *models.Case
	var lastErr error
	for attempt := 0; attempt < caseIDRetries; attempt++ {
		created, lastErr = s.tryCreateCase(ctx, req, createdBy, priority, now)
		if lastErr == nil {
			s.logger.Infow("case created", "case_id", created.CaseID, "created_by", createdBy)
			return created, nil
		}
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			return nil, lastErr
		}
		// Lost the id to a concurrent writer; allocate again.
	}
	return nil, fmt.Errorf("%w: case id allocation exhausted retries", ErrConflict)
}

func (s *caseService) tryCreateCase(ctx context.Context, req *models.CreateCaseRequest, createdBy, priority string, now time.Time) (*models.Case, error) {
	var created models.Case
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Complainant{}, "complainant_id = ?", req.ComplainantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: complainant %d", ErrReferenceNotFound, req.ComplainantID)
			}
			return err
		}
		if err := tx.First(&models.CrimeType{}, "crime_type_id = ?", req.CrimeTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: crime type %d", ErrReferenceNotFound, req.CrimeTypeID)
			}
			return err
		}

		caseID, err := s.alloc.Next(tx, now)
		if err != nil {
			return err
		}

		created = models.Case{
			CaseID:           caseID,
			ComplainantID:    req.ComplainantID,
			CrimeTypeID:      req.CrimeTypeID,
			Title:            req.Title,
			Description:      req.Description,
			IncidentAt:       req.IncidentAt,
			IncidentLocation: req.IncidentLocation,
			Priority:         priority,
			Status:           models.CaseStatusReported,
			NCOStaffID:       createdBy,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		detail := fmt.Sprintf("case %q registered with priority %s", req.Title, priority)
		if err := s.sink.Record(tx, createdBy, models.ActionCreateCase, "cases", caseID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Case %s created: %s", caseID, req.Title)
		return s.sink.Notify(tx, createdBy, &caseID, msg, models.NotificationTypeCase, nil)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReferenceNotFound), errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, err
		default:
			return nil, storageErr(err)
		}
	}
	return &created, nil
}

func (s *caseService) AssignCase(ctx context.Context, caseID, officerID, reason, assignedBy string) error {
	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.First(&c, "case_id = ?", caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: case %s", ErrNotFound, caseID)
			}
			return err
		}

		var officer models.StaffAccount
		if err := tx.First(&officer, "staff_id = ?", officerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: staff %s", ErrReferenceNotFound, officerID)
			}
			return err
		}
		if !officer.IsActive {
			return validationErr("staff %s is not active", officerID)
		}

		if !models.ValidCaseTransition(c.Status, models.CaseStatusAssigned) {
			return validationErr("cannot assign case in status %s", c.Status)
		}

		prevOfficer := c.CIDOfficerID
		updates := map[string]any{
			"cid_officer_staff_id": officerID,
			"status":               models.CaseStatusAssigned,
			"assigned_at":          now,
			"updated_at":           now,
		}
		if err := tx.Model(&models.Case{}).Where("case_id = ?", caseID).Updates(updates).Error; err != nil {
			return err
		}

		history := models.CaseAssignment{
			CaseID:       caseID,
			AssignedFrom: prevOfficer,
			AssignedTo:   officerID,
			Reason:       reason,
			Status:       "Active",
			CreatedAt:    now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		detail := fmt.Sprintf("assigned to %s: %s", officerID, reason)
		if err := s.sink.Record(tx, assignedBy, models.ActionAssignCase, "cases", caseID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Case %s has been assigned to you: %s", caseID, c.Title)
		return s.sink.Notify(tx, officerID, &caseID, msg, models.NotificationTypeCase, nil)
	})
	return s.domainOrStorage(err)
}

func (s *caseService) UpdateCase(ctx context.Context, caseID, status, priority, updatedBy string) error {
	if !models.ValidCaseStatus(status) {
		return validationErr("unknown status %q", status)
	}
	if !models.ValidPriority(priority) {
		return validationErr("unknown priority %q", priority)
	}

	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.First(&c, "case_id = ?", caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: case %s", ErrNotFound, caseID)
			}
			return err
		}

		if !models.ValidCaseTransition(c.Status, status) {
			return validationErr("illegal transition %s -> %s", c.Status, status)
		}

		updates := map[string]any{
			"status":     status,
			"priority":   priority,
			"updated_at": now,
		}
		// Keep the closed_at iff Closed invariant even when closure
		// arrives through a plain status update.
		if status == models.CaseStatusClosed && c.ClosedAt == nil {
			updates["closed_at"] = now
			updates["closed_by"] = updatedBy
		}
		if err := tx.Model(&models.Case{}).Where("case_id = ?", caseID).Updates(updates).Error; err != nil {
			return err
		}

		detail := fmt.Sprintf("status %s -> %s, priority %s -> %s", c.Status, status, c.Priority, priority)
		if err := s.sink.Record(tx, updatedBy, models.ActionUpdateCase, "cases", caseID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Case %s updated: %s", caseID, detail)
		return s.sink.Notify(tx, updatedBy, &caseID, msg, models.NotificationTypeCase, nil)
	})
	return s.domainOrStorage(err)
}

func (s *caseService) CloseCase(ctx context.Context, caseID, closedBy, reason string) error {
	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.First(&c, "case_id = ?", caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: case %s", ErrNotFound, caseID)
			}
			return err
		}

		updates := map[string]any{
			"status":         models.CaseStatusClosed,
			"closed_at":      now,
			"closed_by":      closedBy,
			"closure_reason": reason,
			"updated_at":     now,
		}
		if err := tx.Model(&models.Case{}).Where("case_id = ?", caseID).Updates(updates).Error; err != nil {
			return err
		}

		detail := fmt.Sprintf("closed: %s", reason)
		if err := s.sink.Record(tx, closedBy, models.ActionCloseCase, "cases", caseID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Case %s closed: %s", caseID, reason)
		return s.sink.Notify(tx, closedBy, &caseID, msg, models.NotificationTypeCase, nil)
	})
	if err == nil {
		s.logger.Infow("case closed", "case_id", caseID, "closed_by", closedBy)
	}
	return s.domainOrStorage(err)
}

func (s *caseService) SearchCases(ctx context.Context, keyword string) ([]models.CaseSummary, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"

	var results []models.CaseSummary
	err := s.db.WithContext(ctx).
		Model(&models.Case{}).
		Select("case_id", "title", "status", "priority", "created_at").
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Scan(&results).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return results, nil
}

func (s *caseService) ListCases(ctx context.Context, page, pageSize int, statusFilter string) (*models.PagedCases, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	query := s.db.WithContext(ctx).Model(&models.Case{})
	if statusFilter != "" {
		if !models.ValidCaseStatus(statusFilter) {
			return nil, validationErr("unknown status %q", statusFilter)
		}
		query = query.Where("status = ?", statusFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, storageErr(err)
	}

	var rows []models.CaseSummary
	err := query.
		Select("case_id", "title", "status", "priority", "created_at").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr(err)
	}

	return &models.PagedCases{
		Cases:         rows,
		TotalMatching: total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *caseService) DashboardStats(ctx context.Context) (map[string]int64, error) {
	db := s.db.WithContext(ctx)
	stats := make(map[string]int64)

	var total, closed, evidence, unread int64
	if err := db.Model(&models.Case{}).Count(&total).Error; err != nil {
		return nil, storageErr(err)
	}
	if err := db.Model(&models.Case{}).Where("status = ?", models.CaseStatusClosed).Count(&closed).Error; err != nil {
		return nil, storageErr(err)
	}
	if err := db.Model(&models.Evidence{}).Count(&evidence).Error; err != nil {
		return nil, storageErr(err)
	}
	if err := db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&unread).Error; err != nil {
		return nil, storageErr(err)
	}

	stats["total_cases"] = total
	stats["closed_cases"] = closed
	stats["open_cases"] = total - closed
	stats["evidence_count"] = evidence
	stats["unread_notifications"] = unread
	return stats, nil
}

// domainOrStorage passes through domain errors and wraps anything else as a
// storage failure.
func (s *caseService) domainOrStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrReferenceNotFound) ||
		errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return err
	}
	return storageErr(err)
}
