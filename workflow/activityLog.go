package workflow

import (
	"encoding/json"

	"certstock/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LogEntry describes one audit trail entry before it is persisted
type LogEntry struct {
	Action        models.ActionType
	ActorID       uint
	ActorRole     string
	CertificateID *uint
	FromBranchID  *uint
	ToBranchID    *uint
	Metadata      map[string]interface{}
}

// LogAction appends one entry to the activity log inside the caller's
// transaction, so the entry disappears with the action on rollback.
func LogAction(tx *gorm.DB, entry LogEntry) error {
	var metadata datatypes.JSON
	if entry.Metadata != nil {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
		metadata = datatypes.JSON(raw)
	}

	row := models.ActivityLog{
		ActionType:    entry.Action,
		ActorID:       entry.ActorID,
		ActorRole:     entry.ActorRole,
		CertificateID: entry.CertificateID,
		FromBranchID:  entry.FromBranchID,
		ToBranchID:    entry.ToBranchID,
		Metadata:      metadata,
	}
	return tx.Create(&row).Error
}
