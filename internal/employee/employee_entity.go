package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string           `gorm:"column:first_name;type:varchar(120);not null" json:"firstName"`
	LastName     string           `gorm:"column:last_name;type:varchar(120);not null" json:"lastName"`
	Email        string           `gorm:"column:email;type:varchar(200);uniqueIndex:uq_employee_email" json:"email"`
	Department   string           `gorm:"column:department;type:varchar(120)" json:"department"`
	Position     string           `gorm:"column:position;type:varchar(120)" json:"position"`
	Salary       *decimal.Decimal `gorm:"column:salary;type:numeric(12,2)" json:"salary,omitempty"`
	Country      string           `gorm:"column:country;type:varchar(80)" json:"country"`
	RateCategory string           `gorm:"column:rate_category;type:varchar(80)" json:"rateCategory"`
	PhoneNumber  string           `gorm:"column:phone_number;type:varchar(40)" json:"phoneNumber"`
	HireDate     *time.Time       `gorm:"column:hire_date;type:date" json:"hireDate,omitempty"`
	JoinDate     *time.Time       `gorm:"column:join_date;type:date" json:"joinDate,omitempty"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedDate  time.Time        `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
	UpdatedDate  *time.Time       `gorm:"column:updated_date" json:"updatedDate,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName is used in audit attribution and list projections.
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
