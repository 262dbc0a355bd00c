package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/idgen"
	"github.com/sivamiruthula/crime-management/internal/models"
)

type caseFixture struct {
	svc           CaseService
	db            *gorm.DB
	complainantID uint
	crimeTypeID   uint
}

func newCaseFixture(t *testing.T) *caseFixture {
	t.Helper()
	db := setupTestDB(t)
	seedStaff(t, db, "STF101", models.RoleNCO, "correct-horse", true)
	seedStaff(t, db, "STF201", models.RoleCID, "correct-horse", true)

	return &caseFixture{
		svc:           NewCaseService(db, NewSink(), idgen.NewCaseAllocator(), testLogger()),
		db:            db,
		complainantID: seedComplainant(t, db),
		crimeTypeID:   seedCrimeType(t, db),
	}
}

func (f *caseFixture) createCase(t *testing.T, title string) *models.Case {
	t.Helper()
	created, err := f.svc.CreateCase(context.Background(), &models.CreateCaseRequest{
		ComplainantID: f.complainantID,
		CrimeTypeID:   f.crimeTypeID,
		Title:         title,
		Description:   "statement taken at the scene",
	}, "STF101")
	require.NoError(t, err)
	return created
}

func TestCreateCase(t *testing.T) {
	f := newCaseFixture(t)

	created := f.createCase(t, "Burglary at Osu Market")

	today := time.Now().Format("20060102")
	assert.Equal(t, today+"-0001", created.CaseID)
	assert.Equal(t, models.CaseStatusReported, created.Status)
	assert.Equal(t, models.PriorityMedium, created.Priority)
	assert.Nil(t, created.ClosedAt)

	// exactly one audit entry and one notification, both pointing at the case
	var audits []models.AuditLog
	require.NoError(t, f.db.Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, models.ActionCreateCase, audits[0].Action)
	assert.Equal(t, created.CaseID, audits[0].TargetID)
	assert.Equal(t, "STF101", audits[0].ActorStaffID)

	var notifications []models.Notification
	require.NoError(t, f.db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "STF101", notifications[0].RecipientStaffID)
	require.NotNil(t, notifications[0].CaseID)
	assert.Equal(t, created.CaseID, *notifications[0].CaseID)
}

func TestCreateCase_SequentialIDsPerDay(t *testing.T) {
	f := newCaseFixture(t)

	first := f.createCase(t, "First")
	second := f.createCase(t, "Second")

	today := time.Now().Format("20060102")
	assert.Equal(t, today+"-0001", first.CaseID)
	assert.Equal(t, today+"-0002", second.CaseID)
}

func TestCreateCase_ConcurrentIDsUnique(t *testing.T) {
	f := newCaseFixture(t)

	const workers = 10
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			created, err := f.svc.CreateCase(context.Background(), &models.CreateCaseRequest{
				ComplainantID: f.complainantID,
				CrimeTypeID:   f.crimeTypeID,
				Title:         fmt.Sprintf("Concurrent case %d", n),
			}, "STF101")
			if err == nil {
				ids <- created.CaseID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate case id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestCreateCase_UnknownReferences(t *testing.T) {
	f := newCaseFixture(t)

	_, err := f.svc.CreateCase(context.Background(), &models.CreateCaseRequest{
		ComplainantID: 9999,
		CrimeTypeID:   f.crimeTypeID,
		Title:         "Bad complainant",
	}, "STF101")
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	_, err = f.svc.CreateCase(context.Background(), &models.CreateCaseRequest{
		ComplainantID: f.complainantID,
		CrimeTypeID:   9999,
		Title:         "Bad crime type",
	}, "STF101")
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	// the failed attempts left no audit trail behind
	assert.Zero(t, countAudits(t, f.db))
	assert.Zero(t, countNotifications(t, f.db))
}

func TestAssignCase(t *testing.T) {
	f := newCaseFixture(t)
	created := f.createCase(t, "Assignable")

	err := f.svc.AssignCase(context.Background(), created.CaseID, "STF201", "nearest available CID officer", "STF101")
	require.NoError(t, err)

	var c models.Case
	require.NoError(t, f.db.First(&c, "case_id = ?", created.CaseID).Error)
	assert.Equal(t, models.CaseStatusAssigned, c.Status)
	require.NotNil(t, c.CIDOfficerID)
	assert.Equal(t, "STF201", *c.CIDOfficerID)
	assert.NotNil(t, c.AssignedAt)

	var history models.CaseAssignment
	require.NoError(t, f.db.First(&history, "case_id = ?", created.CaseID).Error)
	assert.Equal(t, "STF201", history.AssignedTo)
	assert.Equal(t, "nearest available CID officer", history.Reason)

	// the notification goes to the assigned officer, not the assigner
	var n models.Notification
	require.NoError(t, f.db.Last(&n).Error)
	assert.Equal(t, "STF201", n.RecipientStaffID)
}

func TestAssignCase_Unknowns(t *testing.T) {
	f := newCaseFixture(t)
	created := f.createCase(t, "Assignable")

	err := f.svc.AssignCase(context.Background(), "19990101-0001", "STF201", "r", "STF101")
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.svc.AssignCase(context.Background(), created.CaseID, "STF999", "r", "STF101")
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestUpdateCase_ForwardOnly(t *testing.T) {
	f := newCaseFixture(t)
	created := f.createCase(t, "Transitions")

	err := f.svc.UpdateCase(context.Background(), created.CaseID, models.CaseStatusInvestigating, models.PriorityHigh, "STF201")
	require.NoError(t, err)

	var c models.Case
	require.NoError(t, f.db.First(&c, "case_id = ?", created.CaseID).Error)
	assert.Equal(t, models.CaseStatusInvestigating, c.Status)
	assert.Equal(t, models.PriorityHigh, c.Priority)

	// backward transitions are rejected
	err = f.svc.UpdateCase(context.Background(), created.CaseID, models.CaseStatusReported, models.PriorityHigh, "STF201")
	assert.ErrorIs(t, err, ErrValidation)

	// unknown enum values are rejected before touching the row
	err = f.svc.UpdateCase(context.Background(), created.CaseID, "Reopened", models.PriorityHigh, "STF201")
	assert.ErrorIs(t, err, ErrValidation)
	err = f.svc.UpdateCase(context.Background(), created.CaseID, models.CaseStatusClosed, "Urgent", "STF201")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateCase_NotFound(t *testing.T) {
	f := newCaseFixture(t)

	err := f.svc.UpdateCase(context.Background(), "19990101-0001", models.CaseStatusAssigned, models.PriorityLow, "STF101")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloseCase(t *testing.T) {
	f := newCaseFixture(t)
	created := f.createCase(t, "Closable")

	err := f.svc.CloseCase(context.Background(), created.CaseID, "STF201", "insufficient evidence")
	require.NoError(t, err)

	var c models.Case
	require.NoError(t, f.db.First(&c, "case_id = ?", created.CaseID).Error)
	assert.Equal(t, models.CaseStatusClosed, c.Status)
	require.NotNil(t, c.ClosedAt)
	require.NotNil(t, c.ClosureReason)
	assert.Equal(t, "insufficient evidence", *c.ClosureReason)

	var audit models.AuditLog
	require.NoError(t, f.db.Last(&audit).Error)
	assert.Equal(t, models.ActionCloseCase, audit.Action)
	assert.Contains(t, audit.Detail, "insufficient evidence")

	// a closed case can still be updated (priority change, same status)
	err = f.svc.UpdateCase(context.Background(), created.CaseID, models.CaseStatusClosed, models.PriorityLow, "STF201")
	require.NoError(t, err)
}

func TestSearchCases(t *testing.T) {
	f := newCaseFixture(t)
	f.createCase(t, "Burglary at Osu Market")
	f.createCase(t, "Stolen vehicle")

	results, err := f.svc.SearchCases(context.Background(), "BURGLARY")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Burglary at Osu Market", results[0].Title)

	// matches descriptions too
	results, err = f.svc.SearchCases(context.Background(), "statement taken")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = f.svc.SearchCases(context.Background(), "no such case")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListCases_Pagination(t *testing.T) {
	f := newCaseFixture(t)

	// deterministic creation times, one minute apart
	f.svc.(*caseService).now = steppingClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), time.Minute)

	for i := 1; i <= 25; i++ {
		f.createCase(t, fmt.Sprintf("Case number %02d", i))
	}

	page2, err := f.svc.ListCases(context.Background(), 2, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 25, page2.TotalMatching)
	require.Len(t, page2.Cases, 10)
	// recency descending: page 2 holds cases 15..6
	assert.Equal(t, "Case number 15", page2.Cases[0].Title)
	assert.Equal(t, "Case number 06", page2.Cases[9].Title)

	page3, err := f.svc.ListCases(context.Background(), 3, 10, "")
	require.NoError(t, err)
	assert.Len(t, page3.Cases, 5)
	assert.EqualValues(t, 25, page3.TotalMatching)

	// out-of-range pages are empty but keep the total
	page4, err := f.svc.ListCases(context.Background(), 4, 10, "")
	require.NoError(t, err)
	assert.Empty(t, page4.Cases)
	assert.EqualValues(t, 25, page4.TotalMatching)
}

func TestListCases_StatusFilter(t *testing.T) {
	f := newCaseFixture(t)
	open := f.createCase(t, "Still open")
	closed := f.createCase(t, "Being closed")
	require.NoError(t, f.svc.CloseCase(context.Background(), closed.CaseID, "STF201", "resolved"))

	paged, err := f.svc.ListCases(context.Background(), 1, 10, models.CaseStatusReported)
	require.NoError(t, err)
	assert.EqualValues(t, 1, paged.TotalMatching)
	require.Len(t, paged.Cases, 1)
	assert.Equal(t, open.CaseID, paged.Cases[0].CaseID)

	_, err = f.svc.ListCases(context.Background(), 1, 10, "Bogus")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDashboardStats(t *testing.T) {
	f := newCaseFixture(t)
	f.createCase(t, "Open one")
	closed := f.createCase(t, "Closed one")
	require.NoError(t, f.svc.CloseCase(context.Background(), closed.CaseID, "STF201", "resolved"))

	stats, err := f.svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats["total_cases"])
	assert.EqualValues(t, 1, stats["open_cases"])
	assert.EqualValues(t, 1, stats["closed_cases"])
	assert.EqualValues(t, 0, stats["evidence_count"])
	// create x2 + close x1 notifications, none read yet
	assert.EqualValues(t, 3, stats["unread_notifications"])
}
