package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OfficeColName = "offices"

type OfficeStatus string

const (
	OfficePending   OfficeStatus = "pending"
	OfficeActive    OfficeStatus = "active"
	OfficeSuspended OfficeStatus = "suspended"
)

// Office is an operating company that owns buses and runs trips.
type Office struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OfficeName  string             `bson:"office_name" json:"office_name" validate:"required"`
	City        string             `bson:"city" json:"city" validate:"required"`
	PhoneNumber string             `bson:"phone_number" json:"phone_number" validate:"required"`
	Address     string             `bson:"address" json:"address" validate:"required"`
	LogoURL     string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	Status      OfficeStatus       `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
