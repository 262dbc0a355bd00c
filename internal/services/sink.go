package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/models"
)

// Sink appends the mandatory side effects of every mutation: one immutable
// audit entry and, for all operations except investigation-note updates, one
// notification. Both writes happen inside the caller's transaction; if
// either fails, the whole operation rolls back.
type Sink struct {
	now func() time.Time
}

func NewSink() *Sink {
	return &Sink{now: time.Now}
}

// Record appends one audit log entry within tx.
func (s *Sink) Record(tx *gorm.DB, actor, action, targetTable, targetID, detail string) error {
	entry := models.AuditLog{
		ActorStaffID: actor,
		Action:       action,
		TargetTable:  targetTable,
		TargetID:     targetID,
		Detail:       detail,
		CreatedAt:    s.now(),
	}
	return tx.Create(&entry).Error
}

// Notify appends one notification row within tx. caseID and relatedID are
// optional links back to the entity that triggered the message.
func (s *Sink) Notify(tx *gorm.DB, recipient string, caseID *string, message, ntype string, relatedID *string) error {
	n := models.Notification{
		RecipientStaffID: recipient,
		CaseID:           caseID,
		RelatedID:        relatedID,
		Message:          message,
		Type:             ntype,
		CreatedAt:        s.now(),
	}
	return tx.Create(&n).Error
}
