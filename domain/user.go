package domain

import (
	"time"
)

const (
	RoleCustomer = "Customer"
	RoleSeller   = "Seller"
	RoleAdmin    = "Admin"
)

// Seller-application progress marker, distinct from Role.
const (
	StatusNone      = ""
	StatusRequested = "requested"
	StatusVerified  = "Verified"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"column:full_name" json:"full_name"`
	Email     string    `gorm:"column:email;unique;not null" json:"email"`
	Image     string    `gorm:"column:image" json:"image,omitempty"`
	Role      string    `gorm:"column:role;default:Customer" json:"role"`
	Status    string    `gorm:"column:status" json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
