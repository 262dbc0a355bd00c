package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/auth"
	"github.com/sivamiruthula/crime-management/internal/idgen"
	"github.com/sivamiruthula/crime-management/internal/models"
)

// SessionService owns the authentication state machine: issuing sessions,
// revoking them and recording every login attempt.
type SessionService interface {
	// Login authenticates a staff account and issues a session token.
	// Every attempt, successful or not, leaves a LoginAttempt row.
	Login(ctx context.Context, staffID, password, origin string) (*models.LoginResponse, error)

	// Logout idempotently deactivates the session for token and stamps
	// the logout time. Already-inactive or unknown tokens are not errors.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves an active, non-idle session to its staff
	// account and bumps its last-activity time.
	Authenticate(ctx context.Context, token string) (*models.StaffAccount, error)

	// ExpireIdle deactivates sessions whose idle time exceeds their own
	// timeout. Called by the external expiry sweep, not by this core.
	ExpireIdle(ctx context.Context, now time.Time) (int64, error)
}

type sessionService struct {
	db             *gorm.DB
	sink           *Sink
	logger         *zap.SugaredLogger
	timeoutMinutes int
	now            func() time.Time
}

// NewSessionService injects the database, the audit sink and the configured
// per-session idle timeout.
func NewSessionService(db *gorm.DB, sink *Sink, logger *zap.SugaredLogger, timeoutMinutes int) SessionService {
	if timeoutMinutes <= 0 {
		timeoutMinutes = 480
	}
	return &sessionService{
		db:             db,
		sink:           sink,
		logger:         logger,
		timeoutMinutes: timeoutMinutes,
		now:            time.Now,
	}
}

func (s *sessionService) Login(ctx context.Context, staffID, password, origin string) (*models.LoginResponse, error) {
	now := s.now()

	var resp *models.LoginResponse
	var authErr *AuthError

	// The failed-attempt record is a deliberate terminal outcome of its
	// branch, so the transaction commits even when login itself fails.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff models.StaffAccount
		if err := tx.First(&staff, "staff_id = ?", staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				authErr = &AuthError{Reason: AuthUserNotFound}
				return s.recordAttempt(tx, staffID, models.LoginFailureUserNotFound, origin, now)
			}
			return err
		}

		if !staff.IsActive {
			authErr = &AuthError{Reason: AuthInactive}
			return s.recordAttempt(tx, staffID, models.LoginFailureInactive, origin, now)
		}

		if !auth.CheckPassword(password, staff.PasswordHash) {
			authErr = &AuthError{Reason: AuthInvalidCredentials}
			return s.recordAttempt(tx, staffID, models.LoginFailureInvalidCredentials, origin, now)
		}

		session := models.Session{
			Token:          idgen.SessionToken(staff.StaffID, now),
			StaffID:        staff.StaffID,
			CreatedAt:      now,
			LastActivityAt: now,
			TimeoutMinutes: s.timeoutMinutes,
			IsActive:       true,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		attempt := models.LoginAttempt{
			StaffID:     staff.StaffID,
			Outcome:     models.LoginOutcomeSuccess,
			Origin:      origin,
			AttemptedAt: now,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.StaffAccount{}).
			Where("staff_id = ?", staff.StaffID).
			Update("last_login_at", now).Error; err != nil {
			return err
		}

		resp = &models.LoginResponse{Token: session.Token, Role: staff.Role}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}
	if authErr != nil {
		s.logger.Warnw("login failed", "staff_id", staffID, "reason", authErr.Reason, "origin", origin)
		return nil, authErr
	}

	s.logger.Infow("login succeeded", "staff_id", staffID, "origin", origin)
	return resp, nil
}

func (s *sessionService) recordAttempt(tx *gorm.DB, staffID, reason, origin string, now time.Time) error {
	attempt := models.LoginAttempt{
		StaffID:       staffID,
		Outcome:       models.LoginOutcomeFailed,
		FailureReason: &reason,
		Origin:        origin,
		AttemptedAt:   now,
	}
	return tx.Create(&attempt).Error
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	now := s.now()
	err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("token = ? AND is_active = ?", token, true).
		Updates(map[string]any{"is_active": false, "logged_out_at": now}).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *sessionService) Authenticate(ctx context.Context, token string) (*models.StaffAccount, error) {
	now := s.now()

	var session models.Session
	err := s.db.WithContext(ctx).
		First(&session, "token = ? AND is_active = ?", token, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &AuthError{Reason: AuthInvalidSession}
		}
		return nil, storageErr(err)
	}

	idle := now.Sub(session.LastActivityAt)
	if idle > time.Duration(session.TimeoutMinutes)*time.Minute {
		// Stale but not yet swept; reject without waiting for the sweep.
		return nil, &AuthError{Reason: AuthInvalidSession}
	}

	var staff models.StaffAccount
	if err := s.db.WithContext(ctx).First(&staff, "staff_id = ?", session.StaffID).Error; err != nil {
		return nil, storageErr(err)
	}
	if !staff.IsActive {
		return nil, &AuthError{Reason: AuthInactive}
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("token = ?", token).
		Update("last_activity_at", now).Error; err != nil {
		return nil, storageErr(err)
	}

	return &staff, nil
}

func (s *sessionService) ExpireIdle(ctx context.Context, now time.Time) (int64, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&sessions).Error
	if err != nil {
		return 0, storageErr(err)
	}

	var expired []string
	for _, sess := range sessions {
		if now.Sub(sess.LastActivityAt) > time.Duration(sess.TimeoutMinutes)*time.Minute {
			expired = append(expired, sess.Token)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	res := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("token IN ?", expired).
		Update("is_active", false)
	if res.Error != nil {
		return 0, storageErr(res.Error)
	}

	s.logger.Infow("expired idle sessions", "count", res.RowsAffected)
	return res.RowsAffected, nil
}
