package transfer

import (
	"time"

	"globalven/internal/employee"
	"globalven/internal/rate"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusProcessed = "PROCESSED"
)

const (
	TypeSalary        = "SALARY"
	TypeBonus         = "BONUS"
	TypeOvertime      = "OVERTIME"
	TypeAllowance     = "ALLOWANCE"
	TypeDeduction     = "DEDUCTION"
	TypeReimbursement = "REIMBURSEMENT"
	TypeAdvance       = "ADVANCE"
	TypeOther         = "OTHER"
)

var transactionTypeDisplayNames = map[string]string{
	TypeSalary:        "Salary Payment",
	TypeBonus:         "Bonus Payment",
	TypeOvertime:      "Overtime Payment",
	TypeAllowance:     "Allowance",
	TypeDeduction:     "Deduction",
	TypeReimbursement: "Reimbursement",
	TypeAdvance:       "Salary Advance",
	TypeOther:         "Other",
}

// TransactionTypes returns the enum in declaration order with display names.
func TransactionTypes() []TransactionTypeOption {
	ordered := []string{
		TypeSalary, TypeBonus, TypeOvertime, TypeAllowance,
		TypeDeduction, TypeReimbursement, TypeAdvance, TypeOther,
	}
	opts := make([]TransactionTypeOption, 0, len(ordered))
	for _, t := range ordered {
		opts = append(opts, TransactionTypeOption{
			Value:       t,
			DisplayName: transactionTypeDisplayNames[t],
		})
	}
	return opts
}

func IsValidTransactionType(t string) bool {
	_, ok := transactionTypeDisplayNames[t]
	return ok
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusProcessed:
		return true
	}
	return false
}

type Transfer struct {
	ID                   int64              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID           int64              `gorm:"column:employee_id" json:"employeeId"`
	Employee             *employee.Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	RateID               int64              `gorm:"column:rate_id" json:"rateId"`
	Rate                 *rate.Rate         `gorm:"foreignKey:RateID" json:"rate,omitempty"`
	TransactionType      string             `gorm:"column:transaction_type" json:"transactionType"`
	Amount               decimal.Decimal    `gorm:"column:amount;type:numeric(19,4)" json:"amount"`
	Currency             string             `gorm:"column:currency" json:"currency"`
	ExchangeRate         *decimal.Decimal   `gorm:"column:exchange_rate;type:numeric(19,6)" json:"exchangeRate,omitempty"`
	AmountInBaseCurrency *decimal.Decimal   `gorm:"column:amount_in_base_currency;type:numeric(19,4)" json:"amountInBaseCurrency,omitempty"`
	HoursWorked          *decimal.Decimal   `gorm:"column:hours_worked;type:numeric(10,2)" json:"hoursWorked,omitempty"`
	Status               string             `gorm:"column:status" json:"status"`
	TransactionDate      time.Time          `gorm:"column:transaction_date" json:"transactionDate"`
	Description          string             `gorm:"column:description" json:"description,omitempty"`
	Notes                string             `gorm:"column:notes" json:"notes,omitempty"`
	ReferenceNo          string             `gorm:"column:reference_no;uniqueIndex:uq_transfer_reference_no" json:"referenceNo"`
	GlRefCode            string             `gorm:"column:gl_ref_code" json:"glRefCode,omitempty"`
	IsActive             bool               `gorm:"column:is_active" json:"isActive"`
	CreatedBy            string             `gorm:"column:created_by" json:"createdBy"`
	CreatedDate          time.Time          `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
	UpdatedBy            *string            `gorm:"column:updated_by" json:"updatedBy,omitempty"`
	UpdatedDate          *time.Time         `gorm:"column:updated_date" json:"updatedDate,omitempty"`
	ApprovedBy           *string            `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	ApprovedDate         *time.Time         `gorm:"column:approved_date" json:"approvedDate,omitempty"`
}

func (Transfer) TableName() string {
	return "transfers_main"
}

// Approve overwrites status unconditionally; no guard against re-approving a
// rejected or processed transfer. Sibling fields from prior transitions are
// left as they are.
func (t *Transfer) Approve(approver string, now time.Time) {
	t.Status = StatusApproved
	t.ApprovedBy = &approver
	t.ApprovedDate = &now
	t.stamp(approver, now)
}

func (t *Transfer) Reject(rejector string, now time.Time) {
	t.Status = StatusRejected
	t.stamp(rejector, now)
}

func (t *Transfer) Process(processor string, now time.Time) {
	t.Status = StatusProcessed
	t.stamp(processor, now)
}

func (t *Transfer) stamp(actor string, now time.Time) {
	t.UpdatedBy = &actor
	t.UpdatedDate = &now
}

// ComputeAmountInBaseCurrency derives amount x exchange rate, and only when
// the exchange rate is present. It is called at save time and on the explicit
// update path, never implicitly on later reads.
func (t *Transfer) ComputeAmountInBaseCurrency() {
	if t.ExchangeRate == nil {
		return
	}
	base := t.Amount.Mul(*t.ExchangeRate)
	t.AmountInBaseCurrency = &base
}
