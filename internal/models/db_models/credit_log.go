package db_models

import "github.com/google/uuid"

const (
	CreditActionDeduct      = "deduct"
	CreditActionRefund      = "refund"
	CreditActionAdminAdd    = "admin_add"
	CreditActionAdminRemove = "admin_remove"
)

// CreditLogEntry is one append-only audit row for a balance change.
// Amount is signed: positive for credits, negative for debits. Rows are never
// updated; the only delete path is the admin account-deletion cascade.
type CreditLogEntry struct {
	BaseModel
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	ClerkUserID string    `gorm:"index" json:"clerk_user_id"`
	Amount      int       `json:"amount"`
	ActionType  string    `gorm:"size:32" json:"action_type"`
	Description string    `json:"description"`
}

func (CreditLogEntry) TableName() string { return "credits_log" }
