package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/models"
)

// ReferenceService creates the reference data cases point at: complainants
// and crime types. Both are create/update-only; deletion is restricted by
// the foreign keys while cases reference them.
type ReferenceService interface {
	CreateComplainant(ctx context.Context, req *models.CreateComplainantRequest, registeredBy string) (*models.Complainant, error)
	CreateCrimeType(ctx context.Context, req *models.CreateCrimeTypeRequest, createdBy string) (*models.CrimeType, error)
}

type referenceService struct {
	db     *gorm.DB
	sink   *Sink
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewReferenceService(db *gorm.DB, sink *Sink, logger *zap.SugaredLogger) ReferenceService {
	return &referenceService{db: db, sink: sink, logger: logger, now: time.Now}
}

func (s *referenceService) CreateComplainant(ctx context.Context, req *models.CreateComplainantRequest, registeredBy string) (*models.Complainant, error) {
	created := models.Complainant{
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		ContactNo:    req.ContactNo,
		Address:      req.Address,
		Occupation:   req.Occupation,
		Email:        req.Email,
		RegisteredBy: registeredBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		targetID := fmt.Sprintf("%d", created.ComplainantID)
		detail := fmt.Sprintf("complainant %q registered", req.Name)
		return s.sink.Record(tx, registeredBy, models.ActionCreateComplainant, "complainants", targetID, detail)
	})
	if err != nil {
		return nil, storageErr(err)
	}

	s.logger.Infow("complainant registered", "complainant_id", created.ComplainantID, "registered_by", registeredBy)
	return &created, nil
}

func (s *referenceService) CreateCrimeType(ctx context.Context, req *models.CreateCrimeTypeRequest, createdBy string) (*models.CrimeType, error) {
	created := models.CrimeType{
		Name:             req.Name,
		Description:      req.Description,
		Severity:         req.Severity,
		BasePenaltyYears: req.BasePenaltyYears,
		CreatedBy:        createdBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		targetID := fmt.Sprintf("%d", created.CrimeTypeID)
		detail := fmt.Sprintf("crime type %q (severity %s)", req.Name, req.Severity)
		return s.sink.Record(tx, createdBy, models.ActionCreateCrimeType, "crime_types", targetID, detail)
	})
	if err != nil {
		return nil, storageErr(err)
	}

	s.logger.Infow("crime type created", "crime_type_id", created.CrimeTypeID, "created_by", createdBy)
	return &created, nil
}
