package model

import "time"

// UserRole is the marketplace role of an account.
type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleContractor UserRole = "CONTRACTOR"
	UserRoleCustomer   UserRole = "CUSTOMER"
)

// UserStatus is whether an account may sign in.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// Valid returns true if the UserStatus is known.
func (s UserStatus) Valid() bool { return s == UserActive || s == UserSuspended }

// User is a marketplace account.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Contractor is a tradesperson profile.
type Contractor struct {
	User
	ContractorID string  `json:"contractorId"`
	BusinessName string  `json:"businessName,omitempty"`
	Trade        string  `json:"trade,omitempty"`
	Credits      int     `json:"credits"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviewCount"`
}

// Customer is a job poster profile.
type Customer struct {
	User
	CustomerID string `json:"customerId"`
	Phone      string `json:"phone,omitempty"`
}

// CreditBalance is a contractor's weekly lead credit allowance.
type CreditBalance struct {
	Available  int       `json:"available"`
	WeeklyCap  int       `json:"weeklyCap"`
	NextRefill time.Time `json:"nextRefill"`
}
