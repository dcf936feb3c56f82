package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit action tags written by the core services.
const (
	AuditShipRequest        = "ship_request"
	AuditApproveShipRequest = "approve_ship_request"
	AuditRejectShipRequest  = "reject_ship_request"
	AuditApproveViaShip     = "approve_via_ship"
	AuditCreditAwarded      = "credit_awarded"
	AuditAdjustShipCredits  = "adjust_ship_credits"
	AuditUpdateShip         = "update_ship"
	AuditOrderCreated       = "order_created"
	AuditOrderFulfilled     = "order_fulfilled"
	AuditOrderDeclined      = "order_declined"
	AuditOrderRefunded      = "order_refunded"
	AuditOrderPended        = "order_pended"
	AuditOrderDeleted       = "order_deleted"
	AuditAdjustBalance      = "adjust_balance"
	AuditDeleteUser         = "delete_user"
)

// Audit is an append-only record of a state-changing action. It doubles as
// the idempotence oracle: the refund safety net checks for an existing
// order_refunded entry before paying out.
type Audit struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"index"`
	Action    string         `gorm:"type:varchar(100);index;not null"`
	UserID    *uint          `gorm:"index"`
	ProjectID *uint          `gorm:"index"`
	Details   datatypes.JSON `gorm:"type:json"`
}
