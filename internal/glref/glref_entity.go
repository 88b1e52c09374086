package glref

import "time"

// GlRefCode is a general-ledger reference code transfers can be tagged with.
type GlRefCode struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string     `gorm:"column:code;uniqueIndex:uq_glref_code" json:"code"`
	Description string     `gorm:"column:description" json:"description"`
	Category    string     `gorm:"column:category" json:"category"`
	IsActive    bool       `gorm:"column:is_active" json:"isActive"`
	CreatedDate time.Time  `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
	UpdatedDate *time.Time `gorm:"column:updated_date" json:"updatedDate,omitempty"`
}

func (GlRefCode) TableName() string {
	return "gl_ref_codes"
}
