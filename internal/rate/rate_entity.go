package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RateTypeHourly  = "hourly"
	RateTypeDaily   = "daily"
	RateTypeMonthly = "monthly"
)

type Rate struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmpCategory   string          `gorm:"column:emp_category" json:"empCategory"`
	RateName      string          `gorm:"column:rate_name" json:"rateName"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(19,4)" json:"amount"`
	Currency      string          `gorm:"column:currency" json:"currency"`
	RateType      string          `gorm:"column:rate_type" json:"rateType"`
	IsActive      bool            `gorm:"column:is_active" json:"isActive"`
	EffectiveDate *time.Time      `gorm:"column:effective_date" json:"effectiveDate,omitempty"`
	ExpiryDate    *time.Time      `gorm:"column:expiry_date" json:"expiryDate,omitempty"`
	CreatedDate   time.Time       `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
	UpdatedDate   *time.Time      `gorm:"column:updated_date" json:"updatedDate,omitempty"`
}

func (Rate) TableName() string {
	return "rates"
}

// IsCurrentlyEffective mirrors the effective-window rule used by the
// repository scope: active, with null dates treated as open-ended.
func (r *Rate) IsCurrentlyEffective(now time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.EffectiveDate != nil && r.EffectiveDate.After(now) {
		return false
	}
	if r.ExpiryDate != nil && r.ExpiryDate.Before(now) {
		return false
	}
	return true
}
