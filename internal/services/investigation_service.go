package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/models"
)

// InvestigationService appends and updates investigator notes on a case.
type InvestigationService interface {
	// AddInvestigation files a new note against an existing case.
	AddInvestigation(ctx context.Context, caseID, officerID, noteType, note string) (*models.Investigation, error)

	// UpdateNote overwrites an existing note's text and timestamp. This
	// is the one mutation that is audited but deliberately does not
	// generate a notification.
	UpdateNote(ctx context.Context, investigationID uint, newNote, updatedBy string) error
}

type investigationService struct {
	db     *gorm.DB
	sink   *Sink
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewInvestigationService(db *gorm.DB, sink *Sink, logger *zap.SugaredLogger) InvestigationService {
	return &investigationService{db: db, sink: sink, logger: logger, now: time.Now}
}

func (s *investigationService) AddInvestigation(ctx context.Context, caseID, officerID, noteType, note string) (*models.Investigation, error) {
	now := s.now()

	var created models.Investigation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Case{}, "case_id = ?", caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: case %s", ErrReferenceNotFound, caseID)
			}
			return err
		}

		created = models.Investigation{
			CaseID:         caseID,
			CIDOfficerID:   officerID,
			Type:           noteType,
			Note:           note,
			InvestigatedAt: now,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		targetID := strconv.FormatUint(uint64(created.InvestigationID), 10)
		detail := fmt.Sprintf("%s note filed for case %s", noteType, caseID)
		if err := s.sink.Record(tx, officerID, models.ActionAddInvestigation, "investigations", targetID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Investigation note filed for case %s", caseID)
		return s.sink.Notify(tx, officerID, &caseID, msg, models.NotificationTypeInvestigation, &targetID)
	})
	if err != nil {
		if errors.Is(err, ErrReferenceNotFound) {
			return nil, err
		}
		return nil, storageErr(err)
	}

	s.logger.Infow("investigation note added", "case_id", caseID, "officer", officerID)
	return &created, nil
}

func (s *investigationService) UpdateNote(ctx context.Context, investigationID uint, newNote, updatedBy string) error {
	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Investigation
		if err := tx.First(&inv, "investigation_id = ?", investigationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: investigation %d", ErrNotFound, investigationID)
			}
			return err
		}

		updates := map[string]any{
			"note":               newNote,
			"investigation_date": now,
			"updated_at":         now,
		}
		if err := tx.Model(&models.Investigation{}).Where("investigation_id = ?", investigationID).Updates(updates).Error; err != nil {
			return err
		}

		targetID := strconv.FormatUint(uint64(investigationID), 10)
		detail := fmt.Sprintf("note updated for case %s", inv.CaseID)
		// Note updates are audited but never notified.
		return s.sink.Record(tx, updatedBy, models.ActionUpdateInvestigation, "investigations", targetID, detail)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return storageErr(err)
}
