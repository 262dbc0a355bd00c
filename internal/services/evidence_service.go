package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/idgen"
	"github.com/sivamiruthula/crime-management/internal/models"
)

// evidenceRefRetries bounds re-allocation when a random reference code
// collides with an existing one.
const evidenceRefRetries = 3

// EvidenceService owns evidence intake, custody transfer and status
// progression. Every mutation is audited and notifies the custodian.
type EvidenceService interface {
	// AddEvidence books an item into the case with status Collected and
	// a freshly generated reference code.
	AddEvidence(ctx context.Context, caseID string, req *models.AddEvidenceRequest, collectedBy string) (*models.Evidence, error)

	// TransferEvidence hands custody to another staff member, moving the
	// item to Under Analysis and updating its stored location.
	TransferEvidence(ctx context.Context, evidenceID uint, fromStaffID, toStaffID, newLocation, note string) error

	// UpdateStatus progresses the custody status (e.g. Submitted,
	// Archived) for the current custodian.
	UpdateStatus(ctx context.Context, evidenceID uint, status, updatedBy string) error
}

type evidenceService struct {
	db     *gorm.DB
	sink   *Sink
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewEvidenceService(db *gorm.DB, sink *Sink, logger *zap.SugaredLogger) EvidenceService {
	return &evidenceService{db: db, sink: sink, logger: logger, now: time.Now}
}

func (s *evidenceService) AddEvidence(ctx context.Context, caseID string, req *models.AddEvidenceRequest, collectedBy string) (*models.Evidence, error) {
	now := s.now()

	var lastErr error
	for attempt := 0; attempt < evidenceRefRetries; attempt++ {
		ev, err := s.tryAddEvidence(ctx, caseID, req, collectedBy, now)
		if err == nil {
			s.logger.Infow("evidence added", "reference_code", ev.ReferenceCode, "case_id", caseID)
			return ev, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: evidence reference collision: %v", ErrConflict, lastErr)
}

func (s *evidenceService) tryAddEvidence(ctx context.Context, caseID string, req *models.AddEvidenceRequest, collectedBy string, now time.Time) (*models.Evidence, error) {
	ref, err := idgen.EvidenceRef(now)
	if err != nil {
		return nil, storageErr(err)
	}

	var created models.Evidence
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Case{}, "case_id = ?", caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: case %s", ErrReferenceNotFound, caseID)
			}
			return err
		}

		created = models.Evidence{
			ReferenceCode:   ref,
			CaseID:          caseID,
			Type:            req.Type,
			Description:     req.Description,
			CollectedBy:     collectedBy,
			CustodianID:     collectedBy,
			Status:          models.EvidenceStatusCollected,
			StorageLocation: req.StorageLocation,
			CollectedAt:     now,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		targetID := strconv.FormatUint(uint64(created.EvidenceID), 10)
		detail := fmt.Sprintf("evidence %s (%s) collected for case %s", ref, req.Type, caseID)
		if err := s.sink.Record(tx, collectedBy, models.ActionAddEvidence, "evidence", targetID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Evidence %s recorded for case %s", ref, caseID)
		return s.sink.Notify(tx, collectedBy, &caseID, msg, models.NotificationTypeEvidence, &ref)
	})
	if err != nil {
		if errors.Is(err, ErrReferenceNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		return nil, storageErr(err)
	}
	return &created, nil
}

func (s *evidenceService) TransferEvidence(ctx context.Context, evidenceID uint, fromStaffID, toStaffID, newLocation, note string) error {
	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev models.Evidence
		if err := tx.First(&ev, "evidence_id = ?", evidenceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: evidence %d", ErrNotFound, evidenceID)
			}
			return err
		}

		var custodian models.StaffAccount
		if err := tx.First(&custodian, "staff_id = ?", toStaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: staff %s", ErrReferenceNotFound, toStaffID)
			}
			return err
		}

		updates := map[string]any{
			"status":             models.EvidenceStatusUnderAnalysis,
			"custodian_staff_id": toStaffID,
			"storage_location":   newLocation,
			"updated_at":         now,
		}
		if err := tx.Model(&models.Evidence{}).Where("evidence_id = ?", evidenceID).Updates(updates).Error; err != nil {
			return err
		}

		targetID := strconv.FormatUint(uint64(evidenceID), 10)
		detail := fmt.Sprintf("custody transferred from %s to %s (location: %s): %s", fromStaffID, toStaffID, newLocation, note)
		if err := s.sink.Record(tx, fromStaffID, models.ActionTransferEvidence, "evidence", targetID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Evidence %s of case %s transferred to your custody", ev.ReferenceCode, ev.CaseID)
		return s.sink.Notify(tx, toStaffID, &ev.CaseID, msg, models.NotificationTypeEvidence, &ev.ReferenceCode)
	})
	if err == nil {
		s.logger.Infow("evidence transferred", "evidence_id", evidenceID, "from", fromStaffID, "to", toStaffID)
	}
	return s.domainOrStorage(err)
}

func (s *evidenceService) UpdateStatus(ctx context.Context, evidenceID uint, status, updatedBy string) error {
	if !models.ValidEvidenceStatus(status) {
		return validationErr("unknown evidence status %q", status)
	}

	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev models.Evidence
		if err := tx.First(&ev, "evidence_id = ?", evidenceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: evidence %d", ErrNotFound, evidenceID)
			}
			return err
		}

		updates := map[string]any{"status": status, "updated_at": now}
		if err := tx.Model(&models.Evidence{}).Where("evidence_id = ?", evidenceID).Updates(updates).Error; err != nil {
			return err
		}

		targetID := strconv.FormatUint(uint64(evidenceID), 10)
		detail := fmt.Sprintf("status %s -> %s", ev.Status, status)
		if err := s.sink.Record(tx, updatedBy, models.ActionUpdateEvidence, "evidence", targetID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Evidence %s status changed to %s", ev.ReferenceCode, status)
		return s.sink.Notify(tx, ev.CustodianID, &ev.CaseID, msg, models.NotificationTypeEvidence, &ev.ReferenceCode)
	})
	return s.domainOrStorage(err)
}

func (s *evidenceService) domainOrStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrReferenceNotFound) ||
		errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return err
	}
	return storageErr(err)
}
