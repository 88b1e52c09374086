package transfer

import "github.com/shopspring/decimal"

type CreateTransferRequest struct {
	EmployeeID      int64            `json:"employeeId" binding:"required"`
	RateID          *int64           `json:"rateId"`
	TransactionType string           `json:"transactionType" binding:"omitempty,oneof=SALARY BONUS OVERTIME ALLOWANCE DEDUCTION REIMBURSEMENT ADVANCE OTHER"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	HoursWorked     *decimal.Decimal `json:"hoursWorked"`
	Description     string           `json:"description"`
	Currency        string           `json:"currency"`
	Notes           string           `json:"notes"`
	GlRefCode       string           `json:"glRefCode"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate"`
}

type UpdateTransferRequest struct {
	TransactionType string           `json:"transactionType" binding:"omitempty,oneof=SALARY BONUS OVERTIME ALLOWANCE DEDUCTION REIMBURSEMENT ADVANCE OTHER"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	HoursWorked     *decimal.Decimal `json:"hoursWorked"`
	Description     string           `json:"description"`
	Currency        string           `json:"currency"`
	Notes           string           `json:"notes"`
	GlRefCode       string           `json:"glRefCode"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate"`
}

type TransferStatistics struct {
	TotalTransfers int64 `json:"totalTransfers"`
	PendingCount   int64 `json:"pendingCount"`
	ApprovedCount  int64 `json:"approvedCount"`
	RejectedCount  int64 `json:"rejectedCount"`
	ProcessedCount int64 `json:"processedCount"`
}

type TransactionTypeOption struct {
	Value       string `json:"value"`
	DisplayName string `json:"displayName"`
}

type DateRangeQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

type AmountRangeQuery struct {
	MinAmount string `form:"minAmount" binding:"required"`
	MaxAmount string `form:"maxAmount" binding:"required"`
}
