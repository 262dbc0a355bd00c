// Package idgen produces the human-readable identifiers used across the
// system: date-scoped sequential case ids, random evidence reference codes
// and opaque session tokens.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const alphanum = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CaseAllocator hands out case ids of the form <YYYYMMDD>-<NNNN>, where the
// sequence restarts at 0001 each day. Allocation is serialized through a
// process-wide mutex; the primary-key constraint on cases.case_id is the
// backstop for writers outside this process, surfaced to the caller as a
// duplicate-key error to retry with a fresh allocation.
type CaseAllocator struct {
	mu sync.Mutex
}

func NewCaseAllocator() *CaseAllocator {
	return &CaseAllocator{}
}

// Next computes the next free id for now's day prefix by scanning the
// current maximum inside the caller's transaction. Must be paired with the
// unique constraint plus retry-on-conflict at the call site; the scan alone
// is not safe against concurrent writers in other processes.
func (a *CaseAllocator) Next(tx *gorm.DB, now time.Time) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	prefix := now.Format("20060102")

	var last string
	err := tx.Model(&caseRow{}).
		Select("case_id").
		Where("case_id LIKE ?", prefix+"-%").
		Order("case_id DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		parts := strings.SplitN(last, "-", 2)
		if len(parts) == 2 {
			n, convErr := strconv.Atoi(parts[1])
			if convErr == nil {
				seq = n + 1
			}
		}
	}

	return fmt.Sprintf("%s-%04d", prefix, seq), nil
}

// caseRow avoids an import cycle with models; only the table name matters.
type caseRow struct{}

func (caseRow) TableName() string { return "cases" }

// EvidenceRef generates a reference code of the form
// EV-<YYYYMMDDHHMMSS>-<4 random alphanumeric>. The 62^4 keyspace within one
// second makes collisions negligible, but the unique index on
// evidence.reference_code still catches them for the caller to retry.
func EvidenceRef(now time.Time) (string, error) {
	suffix, err := randToken(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EV-%s-%s", now.Format("20060102150405"), suffix), nil
}

// SessionToken builds an opaque, unguessable token from the staff id, a
// nanosecond timestamp and a v4 UUID. Unpredictability comes entirely from
// the UUID; the other parts keep tokens unique even if the random source
// ever repeated.
func SessionToken(staffID string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", staffID, now.UnixNano(), uuid.NewString())
}

func randToken(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(alphanum)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphanum[idx.Int64()]
	}
	return string(b), nil
}
