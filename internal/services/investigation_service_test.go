package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/idgen"
	"github.com/sivamiruthula/crime-management/internal/models"
)

func newInvestigationFixture(t *testing.T) (InvestigationService, *gorm.DB, string) {
	t.Helper()
	db := setupTestDB(t)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)
	seedStaff(t, db, "STF201", models.RoleCID, "correct-horse", true)

	sink := NewSink()
	cases := NewCaseService(db, sink, idgen.NewCaseAllocator(), testLogger())
	created, err := cases.CreateCase(context.Background(), &models.CreateCaseRequest{
		ComplainantID: seedComplainant(t, db),
		CrimeTypeID:   seedCrimeType(t, db),
		Title:         "Burglary at Osu Market",
	}, "STF101")
	require.NoError(t, err)

	return NewInvestigationService(db, sink, testLogger()), db, created.CaseID
}

func TestAddInvestigation(t *testing.T) {
	svc, db, caseID := newInvestigationFixture(t)

	inv, err := svc.AddInvestigation(context.Background(), caseID, "STF201", models.InvestigationTypeInterview, "complainant interviewed at station")
	require.NoError(t, err)
	assert.NotZero(t, inv.InvestigationID)
	assert.Equal(t, caseID, inv.CaseID)

	var audit models.AuditLog
	require.NoError(t, db.Last(&audit).Error)
	assert.Equal(t, models.ActionAddInvestigation, audit.Action)
	assert.Equal(t, "STF201", audit.ActorStaffID)

	var n models.Notification
	require.NoError(t, db.Last(&n).Error)
	assert.Equal(t, "STF201", n.RecipientStaffID)
	require.NotNil(t, n.CaseID)
	assert.Equal(t, caseID, *n.CaseID)
}

func TestAddInvestigation_UnknownCase(t *testing.T) {
	svc, _, _ := newInvestigationFixture(t)

	_, err := svc.AddInvestigation(context.Background(), "19990101-0001", "STF201", models.InvestigationTypeInterview, "n")
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestUpdateNote_AuditedButNotNotified(t *testing.T) {
	svc, db, caseID := newInvestigationFixture(t)

	inv, err := svc.AddInvestigation(context.Background(), caseID, "STF201", models.InvestigationTypeFollowUp, "initial findings")
	require.NoError(t, err)

	audits := countAudits(t, db)
	notifications := countNotifications(t, db)

	require.NoError(t, svc.UpdateNote(context.Background(), inv.InvestigationID, "revised findings after lab report", "STF201"))

	var stored models.Investigation
	require.NoError(t, db.First(&stored, "investigation_id = ?", inv.InvestigationID).Error)
	assert.Equal(t, "revised findings after lab report", stored.Note)
	assert.True(t, stored.InvestigatedAt.After(inv.InvestigatedAt) || stored.InvestigatedAt.Equal(inv.InvestigatedAt))

	assert.Equal(t, audits+1, countAudits(t, db))
	assert.Equal(t, notifications, countNotifications(t, db))

	var audit models.AuditLog
	require.NoError(t, db.Last(&audit).Error)
	assert.Equal(t, models.ActionUpdateInvestigation, audit.Action)
}

func TestUpdateNote_NotFound(t *testing.T) {
	svc, _, _ := newInvestigationFixture(t)

	err := svc.UpdateNote(context.Background(), 9999, "n", "STF201")
	assert.ErrorIs(t, err, ErrNotFound)
}
