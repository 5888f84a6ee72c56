package entity

import "time"

// User types classify an account for display purposes; authorization is
// driven by Roles, not Type.
const (
	UserTypeCustomer = "CUSTOMER"
	UserTypeAdmin    = "ADMIN"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CivilID   string    `json:"civil_id,omitempty"`
	Type      string    `json:"type"` // CUSTOMER or ADMIN
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
