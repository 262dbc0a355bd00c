package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/auth"
	"github.com/sivamiruthula/crime-management/internal/models"
)

// StaffService covers the admin-side account operations. Accounts are never
// deleted; deactivation is the only removal path.
type StaffService interface {
	CreateStaff(ctx context.Context, req *models.CreateStaffRequest, createdBy string) (*models.StaffAccount, error)
	Deactivate(ctx context.Context, staffID, actor string) error
	Activate(ctx context.Context, staffID, actor string) error
	ResetPassword(ctx context.Context, staffID, newPassword, actor string) error
}

type staffService struct {
	db         *gorm.DB
	sink       *Sink
	logger     *zap.SugaredLogger
	bcryptCost int
	now        func() time.Time
}

func NewStaffService(db *gorm.DB, sink *Sink, logger *zap.SugaredLogger, bcryptCost int) StaffService {
	return &staffService{db: db, sink: sink, logger: logger, bcryptCost: bcryptCost, now: time.Now}
}

func (s *staffService) CreateStaff(ctx context.Context, req *models.CreateStaffRequest, createdBy string) (*models.StaffAccount, error) {
	digest, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		// Hashing failure aborts the operation; plaintext is never stored.
		return nil, validationErr("cannot hash password: %v", err)
	}

	now := s.now()
	created := models.StaffAccount{
		StaffID:      req.StaffID,
		Surname:      req.Surname,
		OtherNames:   req.OtherNames,
		Role:         req.Role,
		PasswordHash: digest,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		detail := fmt.Sprintf("account created with role %s", req.Role)
		if err := s.sink.Record(tx, createdBy, models.ActionCreateStaff, "staff_accounts", req.StaffID, detail); err != nil {
			return err
		}
		msg := fmt.Sprintf("Your account was created with role %s", req.Role)
		return s.sink.Notify(tx, req.StaffID, nil, msg, models.NotificationTypeAccount, nil)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: staff id %s already exists", ErrConflict, req.StaffID)
		}
		return nil, storageErr(err)
	}

	s.logger.Infow("staff account created", "staff_id", req.StaffID, "role", req.Role, "created_by", createdBy)
	return &created, nil
}

func (s *staffService) Deactivate(ctx context.Context, staffID, actor string) error {
	return s.setActive(ctx, staffID, actor, false)
}

func (s *staffService) Activate(ctx context.Context, staffID, actor string) error {
	return s.setActive(ctx, staffID, actor, true)
}

func (s *staffService) setActive(ctx context.Context, staffID, actor string, active bool) error {
	action := models.ActionDeactivateStaff
	verb := "deactivated"
	if active {
		action = models.ActionActivateStaff
		verb = "activated"
	}

	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff models.StaffAccount
		if err := tx.First(&staff, "staff_id = ?", staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: staff %s", ErrNotFound, staffID)
			}
			return err
		}

		updates := map[string]any{"is_active": active, "updated_at": now}
		if err := tx.Model(&models.StaffAccount{}).Where("staff_id = ?", staffID).Updates(updates).Error; err != nil {
			return err
		}

		if err := s.sink.Record(tx, actor, action, "staff_accounts", staffID, "account "+verb); err != nil {
			return err
		}
		return s.sink.Notify(tx, staffID, nil, "Your account was "+verb, models.NotificationTypeAccount, nil)
	})
	if err == nil {
		s.logger.Infow("staff account "+verb, "staff_id", staffID, "actor", actor)
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return storageErr(err)
}

func (s *staffService) ResetPassword(ctx context.Context, staffID, newPassword, actor string) error {
	digest, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return validationErr("cannot hash password: %v", err)
	}

	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff models.StaffAccount
		if err := tx.First(&staff, "staff_id = ?", staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: staff %s", ErrNotFound, staffID)
			}
			return err
		}

		updates := map[string]any{"password_hash": digest, "updated_at": now}
		if err := tx.Model(&models.StaffAccount{}).Where("staff_id = ?", staffID).Updates(updates).Error; err != nil {
			return err
		}

		if err := s.sink.Record(tx, actor, models.ActionResetPassword, "staff_accounts", staffID, "password reset"); err != nil {
			return err
		}
		return s.sink.Notify(tx, staffID, nil, "Your password was reset", models.NotificationTypeAccount, nil)
	})
	if err == nil {
		s.logger.Infow("password reset", "staff_id", staffID, "actor", actor)
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return storageErr(err)
}
