package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UserColName = "users"

// Role is the closed set of account roles. Route guards and ownership rules
// compare against these constants only; raw strings never reach a policy
// decision.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleOfficeEmployee Role = "officeEmployee"
	RoleAdmin          Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleOfficeEmployee, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may operate on resources it does not own.
func (r Role) IsStaff() bool {
	return r == RoleOfficeEmployee || r == RoleAdmin
}

type User struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName      string              `bson:"full_name" json:"full_name" validate:"required"`
	Username      string              `bson:"username,omitempty" json:"username,omitempty"`
	Phone         string              `bson:"phone" json:"phone" validate:"required"`
	Email         string              `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	PasswordHash  string              `bson:"password_hash" json:"-"`
	Role          Role                `bson:"role" json:"role"`
	OfficeID      *primitive.ObjectID `bson:"office_id,omitempty" json:"office_id,omitempty"`
	ProfileImage  string              `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	PaymentMethod string              `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
}

// UserView is a User joined with the name of its office for list/detail
// responses.
type UserView struct {
	User       `bson:",inline"`
	OfficeName string `bson:"office_name,omitempty" json:"office_name,omitempty"`
}
