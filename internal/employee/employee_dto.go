package employee

type CreateEmployeeRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Salary       string `json:"salary"`
	Country      string `json:"country"`
	RateCategory string `json:"rateCategory"`
	PhoneNumber  string `json:"phoneNumber"`
	HireDate     string `json:"hireDate"`
	JoinDate     string `json:"joinDate"`
}

type UpdateEmployeeRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Salary       string `json:"salary"`
	Country      string `json:"country"`
	RateCategory string `json:"rateCategory"`
	PhoneNumber  string `json:"phoneNumber"`
	HireDate     string `json:"hireDate"`
	JoinDate     string `json:"joinDate"`
}
