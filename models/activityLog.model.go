package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActionType defines the kind of action recorded in the activity log
type ActionType string

const (
	ActionBulkCreate ActionType = "bulk_create"
	ActionMigrate    ActionType = "migrate"
	ActionReserve    ActionType = "reserve"
	ActionPrint      ActionType = "print"
	ActionReprint    ActionType = "reprint"
	ActionRelease    ActionType = "release"

	// medal stock actions
	ActionMedalAdd   ActionType = "add"
	ActionMigrateOut ActionType = "migrate_out"
	ActionMigrateIn  ActionType = "migrate_in"
)

// ActivityLog is the append-only audit trail of every state-changing action.
// Rows are written inside the same transaction as the action they record, so
// a rolled-back operation leaves no log entry behind.
type ActivityLog struct {
	gorm.Model
	ActionType    ActionType     `json:"actionType" gorm:"type:varchar(30);not null;index"`
	ActorID       uint           `json:"actorId" gorm:"not null;index"`
	ActorRole     string         `json:"actorRole" gorm:"type:varchar(20)"`
	CertificateID *uint          `json:"certificateId" gorm:"index"`
	FromBranchID  *uint          `json:"fromBranchId"`
	ToBranchID    *uint          `json:"toBranchId"`
	Metadata      datatypes.JSON `json:"metadata"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
