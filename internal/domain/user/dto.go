package user

import "github.com/shopspring/decimal"

// UserResponse represents user data in API responses
type UserResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       *string          `json:"phone,omitempty"`
	UserType    Role             `json:"userType"`
	EmployeeID  *string          `json:"employeeId,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	JoiningDate *string          `json:"joiningDate,omitempty"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	Address     *string          `json:"address,omitempty"`
	CreatedAt   string           `json:"createdAt"`
}

// NewUserResponse strips credentials from u.
func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		UserType:    u.Role,
		EmployeeID:  u.LoginID,
		Department:  u.Department,
		Designation: u.Designation,
		Salary:      u.Salary,
		Address:     u.Address,
		CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if u.JoiningDate != nil {
		d := u.JoiningDate.Format("2006-01-02")
		resp.JoiningDate = &d
	}
	return resp
}
