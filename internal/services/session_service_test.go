package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/models"
)

func newSessionServiceForTest(t *testing.T) (SessionService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewSessionService(db, NewSink(), testLogger(), 480)
	return svc, db
}

func TestLogin_Success(t *testing.T) {
	svc, db := newSessionServiceForTest(t)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)

	resp, err := svc.Login(context.Background(), "STF101", "correct-horse", "10.0.0.5")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleNCO, resp.Role)

	var session models.Session
	require.NoError(t, db.First(&session, "token = ?", resp.Token).Error)
	assert.True(t, session.IsActive)
	assert.Equal(t, "STF101", session.StaffID)
	assert.Equal(t, 480, session.TimeoutMinutes)

	var attempt models.LoginAttempt
	require.NoError(t, db.First(&attempt, "staff_id = ?", "STF101").Error)
	assert.Equal(t, models.LoginOutcomeSuccess, attempt.Outcome)
	assert.Nil(t, attempt.FailureReason)
	assert.Equal(t, "10.0.0.5", attempt.Origin)

	var staff models.StaffAccount
	require.NoError(t, db.First(&staff, "staff_id = ?", "STF101").Error)
	assert.NotNil(t, staff.LastLoginAt)
}

func TestLogin_UnknownUser_RecordsAttemptsNeverSessions(t *testing.T) {
	svc, db := newSessionServiceForTest(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), "STF999", "whatever-pass", "10.0.0.5")
		require.Error(t, err)
		ae, ok := IsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, AuthUserNotFound, ae.Reason)
	}

	var attempts []models.LoginAttempt
	require.NoError(t, db.Find(&attempts, "staff_id = ?", "STF999").Error)
	require.Len(t, attempts, 3)
	for _, a := range attempts {
		assert.Equal(t, models.LoginOutcomeFailed, a.Outcome)
		require.NotNil(t, a.FailureReason)
		assert.Equal(t, models.LoginFailureUserNotFound, *a.FailureReason)
	}

	var sessions int64
	require.NoError(t, db.Model(&models.Session{}).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, db := newSessionServiceForTest(t)
	seedStaff(t, db, "STF101", models.RoleCID, "correct-horse", true)

	_, err := svc.Login(context.Background(), "STF101", "wrong-horse", "")
	ae, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthInvalidCredentials, ae.Reason)

	var attempt models.LoginAttempt
	require.NoError(t, db.First(&attempt, "staff_id = ?", "STF101").Error)
	require.NotNil(t, attempt.FailureReason)
	assert.Equal(t, models.LoginFailureInvalidCredentials, *attempt.FailureReason)
}

func TestLogin_InactiveAccount_RecordsAttempt(t *testing.T) {
	svc, db := newSessionServiceForTest(t)
	seedStaff(t, db, "STF102", models.RoleCID, "correct-horse", false)

	_, err := svc.Login(context.Background(), "STF102", "correct-horse", "")
	ae, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthInactive, ae.Reason)

	var attempt models.LoginAttempt
	require.NoError(t, db.First(&attempt, "staff_id = ?", "STF102").Error)
	require.NotNil(t, attempt.FailureReason)
	assert.Equal(t, models.LoginFailureInactive, *attempt.FailureReason)
}

func TestLogout_Idempotent(t *testing.T) {
	svc, db := newSessionServiceForTest(t)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)
	seedStaff(t, db, "STF103", models.RoleCID, "correct-horse", true)

	resp, err := svc.Login(context.Background(), "STF101", "correct-horse", "")
	require.NoError(t, err)
	other, err := svc.Login(context.Background(), "STF103", "correct-horse", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	var session models.Session
	require.NoError(t, db.First(&session, "token = ?", resp.Token).Error)
	assert.False(t, session.IsActive)
	assert.NotNil(t, session.LoggedOutAt)

	// the other session is untouched
	var otherSession models.Session
	require.NoError(t, db.First(&otherSession, "token = ?", other.Token).Error)
	assert.True(t, otherSession.IsActive)
	assert.Nil(t, otherSession.LoggedOutAt)

	// repeating is not an error and changes nothing
	firstLogout := *session.LoggedOutAt
	require.NoError(t, svc.Logout(context.Background(), resp.Token))
	require.NoError(t, db.First(&session, "token = ?", resp.Token).Error)
	assert.Equal(t, firstLogout.Unix(), session.LoggedOutAt.Unix())

	// unknown tokens are quietly ignored too
	require.NoError(t, svc.Logout(context.Background(), "no-such-token"))
}

func TestAuthenticate(t *testing.T) {
	svc, db := newSessionServiceForTest(t)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)

	resp, err := svc.Login(context.Background(), "STF101", "correct-horse", "")
	require.NoError(t, err)

	staff, err := svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "STF101", staff.StaffID)

	_, err = svc.Authenticate(context.Background(), "bogus-token")
	ae, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthInvalidSession, ae.Reason)

	// a logged-out session no longer authenticates
	require.NoError(t, svc.Logout(context.Background(), resp.Token))
	_, err = svc.Authenticate(context.Background(), resp.Token)
	_, ok = IsAuthError(err)
	assert.True(t, ok)
}

func TestAuthenticate_IdleSessionRejected(t *testing.T) {
	svc, db := newSessionServiceForTest(t)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)

	resp, err := svc.Login(context.Background(), "STF101", "correct-horse", "")
	require.NoError(t, err)

	// age the session past its own timeout
	stale := time.Now().Add(-9 * time.Hour)
	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", resp.Token).
		Update("last_activity_at", stale).Error)

	_, err = svc.Authenticate(context.Background(), resp.Token)
	ae, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthInvalidSession, ae.Reason)
}

func TestExpireIdle(t *testing.T) {
	svc, db := newSessionServiceForTest(t)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)
	seedStaff(t, db, "STF102", models.RoleCID, "correct-horse", true)

	fresh, err := svc.Login(context.Background(), "STF101", "correct-horse", "")
	require.NoError(t, err)
	stale, err := svc.Login(context.Background(), "STF102", "correct-horse", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", stale.Token).
		Update("last_activity_at", time.Now().Add(-9*time.Hour)).Error)

	expired, err := svc.ExpireIdle(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, expired)

	var freshSession, staleSession models.Session
	require.NoError(t, db.First(&freshSession, "token = ?", fresh.Token).Error)
	require.NoError(t, db.First(&staleSession, "token = ?", stale.Token).Error)
	assert.True(t, freshSession.IsActive)
	assert.False(t, staleSession.IsActive)
}
