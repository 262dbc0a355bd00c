package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/auth"
	"github.com/sivamiruthula/crime-management/internal/database"
	"github.com/sivamiruthula/crime-management/internal/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// MaxOpenConns(1) keeps every connection on the same in-memory database
// and serializes concurrent transactions the way a single writer would.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))
	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func seedStaff(t *testing.T, db *gorm.DB, staffID, role, password string, active bool) {
	t.Helper()

	digest, err := auth.HashPassword(password, 4) // low cost, test only
	require.NoError(t, err)

	staff := models.StaffAccount{
		StaffID:      staffID,
		Surname:      "Mensah",
		OtherNames:   "Kofi",
		Role:         role,
		PasswordHash: digest,
		IsActive:     active,
	}
	require.NoError(t, db.Create(&staff).Error)
	if !active {
		// GORM substitutes the default (true) for a zero-valued bool on
		// insert, so inactive accounts must be flipped after creation.
		require.NoError(t, db.Model(&models.StaffAccount{}).
			Where("staff_id = ?", staffID).
			Update("is_active", false).Error)
	}
}

func seedComplainant(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	c := models.Complainant{Name: "Ama Owusu", Age: 34, Gender: "Female"}
	require.NoError(t, db.Create(&c).Error)
	return c.ComplainantID
}

func seedCrimeType(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	ct := models.CrimeType{Name: "Burglary", Severity: models.PriorityHigh, BasePenaltyYears: 5}
	require.NoError(t, db.Create(&ct).Error)
	return ct.CrimeTypeID
}

func countAudits(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&n).Error)
	return n
}

func countNotifications(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&n).Error)
	return n
}

// fixedClock returns a clock stuck at ts.
func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		ts := current
		current = current.Add(step)
		return ts
	}
}
