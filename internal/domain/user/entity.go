package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePayroll Role = "payroll"
)

// User is an operator account for the engine's API gate. Account
// provisioning belongs to the surrounding HR dashboard.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
