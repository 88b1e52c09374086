package audit

import "time"

// TransferAuditEntry is an append-only record of a lifecycle event applied to
// a transfer, written by the kafka consumer from published outbox events.
type TransferAuditEntry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TransferID int64     `gorm:"column:transfer_id;not null;index" json:"transferId"`
	EventType  string    `gorm:"column:event_type;type:varchar(40);not null" json:"eventType"`
	Status     string    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Actor      string    `gorm:"column:actor;type:varchar(120)" json:"actor"`
	RequestID  string    `gorm:"column:request_id;type:varchar(64)" json:"requestId"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurredAt"`
	RecordedAt time.Time `gorm:"column:recorded_at;autoCreateTime" json:"recordedAt"`
}

func (TransferAuditEntry) TableName() string {
	return "transfer_audit_log"
}
