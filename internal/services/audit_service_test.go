package services

import (
	"strings"
	"testing"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRefundRecordedMatchesOrderID(t *testing.T) {
	setupTestDB()
	user := createTestUser("audited", 0, models.RoleUser)

	err := RecordAudit(database.DB, models.AuditOrderRefunded, &user.ID, nil, map[string]interface{}{
		"order_id": 7,
		"amount":   30.0,
	})
	assert.NoError(t, err)

	recorded, err := RefundRecorded(database.DB, 7)
	assert.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = RefundRecorded(database.DB, 8)
	assert.NoError(t, err)
	assert.False(t, recorded)
}

func TestRefundRecordedIgnoresOtherActions(t *testing.T) {
	setupTestDB()
	user := createTestUser("other", 0, models.RoleUser)

	err := RecordAudit(database.DB, models.AuditOrderDeclined, &user.ID, nil, map[string]interface{}{
		"order_id": 7,
	})
	assert.NoError(t, err)

	recorded, err := RefundRecorded(database.DB, 7)
	assert.NoError(t, err)
	assert.False(t, recorded)
}

func TestFindAuditsFilters(t *testing.T) {
	setupTestDB()
	alice := createTestUser("alice", 0, models.RoleUser)
	bob := createTestUser("bob", 0, models.RoleUser)

	assert.NoError(t, RecordAudit(database.DB, models.AuditOrderCreated, &alice.ID, nil, nil))
	assert.NoError(t, RecordAudit(database.DB, models.AuditOrderCreated, &bob.ID, nil, nil))
	assert.NoError(t, RecordAudit(database.DB, models.AuditOrderDeclined, &alice.ID, nil, nil))

	audits, total, err := FindAudits(AuditFilter{UserID: &alice.ID, Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, audits, 2)

	action := models.AuditOrderCreated
	audits, total, err = FindAudits(AuditFilter{Action: &action, Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	audits, total, err = FindAudits(AuditFilter{UserID: &alice.ID, Action: &action, Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.AuditOrderCreated, audits[0].Action)
}

func TestGenerateAuditCSV(t *testing.T) {
	setupTestDB()
	user := createTestUser("exported", 0, models.RoleUser)

	assert.NoError(t, RecordAudit(database.DB, models.AuditAdjustBalance, &user.ID, nil, map[string]interface{}{
		"delta": 5.0,
	}))

	audits, _, err := FindAudits(AuditFilter{Page: 1, Limit: 10})
	assert.NoError(t, err)

	data, err := GenerateAuditCSV(audits)
	assert.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "ID,Time,Action,User ID,Project ID,Details"))
	assert.Contains(t, out, models.AuditAdjustBalance)
	assert.Contains(t, out, "delta")
}
