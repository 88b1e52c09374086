package rate

type CreateRateRequest struct {
	EmpCategory   string `json:"empCategory" binding:"required"`
	RateName      string `json:"rateName" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Currency      string `json:"currency"`
	RateType      string `json:"rateType" binding:"omitempty,oneof=hourly daily monthly"`
	EffectiveDate string `json:"effectiveDate"`
	ExpiryDate    string `json:"expiryDate"`
}

type UpdateRateRequest struct {
	EmpCategory   string `json:"empCategory" binding:"required"`
	RateName      string `json:"rateName" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Currency      string `json:"currency"`
	RateType      string `json:"rateType" binding:"omitempty,oneof=hourly daily monthly"`
	EffectiveDate string `json:"effectiveDate"`
	ExpiryDate    string `json:"expiryDate"`
}

type RateStatistics struct {
	TotalRates  int64  `json:"totalRates"`
	ActiveRates int64  `json:"activeRates"`
	MinAmount   string `json:"minAmount"`
	MaxAmount   string `json:"maxAmount"`
	AvgAmount   string `json:"avgAmount"`
}
