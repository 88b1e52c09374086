package events

import "time"

const TransferLifecycleTopic = "payroll.transfer.lifecycle.v1"

const (
	TransferCreated   = "transfer_created"
	TransferApproved  = "transfer_approved"
	TransferRejected  = "transfer_rejected"
	TransferProcessed = "transfer_processed"
)

type TransferLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	TransferID int64     `json:"transfer_id"`
	EmployeeID int64     `json:"employee_id"`
	Status     string    `json:"status"`
	Actor      string    `json:"actor,omitempty"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}
