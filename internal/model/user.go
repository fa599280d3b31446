package model

import "time"

// User represents an account in the system: a customer, a shop employee, or
// an administrator. Username and email are globally unique; the unique
// indexes are the authoritative guard against concurrent duplicate
// registrations.
type User struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Username        string     `json:"username" gorm:"uniqueIndex:uq_users_username;size:50;not null"`
	Email           string     `json:"email" gorm:"uniqueIndex:uq_users_email;size:255;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName        string     `json:"full_name" gorm:"size:100;not null"`
	Phone           string     `json:"phone,omitempty" gorm:"size:20"`
	Role            Role       `json:"role" gorm:"size:20;not null;default:'CUSTOMER';index"`
	ShopLocation    string     `json:"shop_location,omitempty" gorm:"size:50;index"`
	DeliveryAddress string     `json:"delivery_address,omitempty" gorm:"size:255"`
	IsActive        bool       `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
}

// IsCustomer reports whether the account holds the CUSTOMER role.
func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }

// IsEmployee reports whether the account holds the EMPLOYEE role.
func (u *User) IsEmployee() bool { return u.Role == RoleEmployee }

// IsAdmin reports whether the account holds the ADMIN role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
