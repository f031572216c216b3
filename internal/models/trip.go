package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const TripColName = "trips"

type TripStatus string

const (
	TripActive    TripStatus = "active"
	TripCancelled TripStatus = "cancelled"
	TripFinished  TripStatus = "finished"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripActive, TripCancelled, TripFinished:
		return true
	}
	return false
}

type Trip struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OfficeID      primitive.ObjectID `bson:"office_id" json:"office_id"`
	BusID         primitive.ObjectID `bson:"bus_id" json:"bus_id"`
	DepartureCity string             `bson:"departure_city" json:"departure_city" validate:"required"`
	ArrivalCity   string             `bson:"arrival_city" json:"arrival_city" validate:"required"`
	DepartureTime time.Time          `bson:"departure_time" json:"departure_time" validate:"required"`
	ArrivalTime   time.Time          `bson:"arrival_time,omitempty" json:"arrival_time,omitempty"`
	TotalPrice    float64            `bson:"total_price" json:"total_price" validate:"required,gt=0"`
	Status        TripStatus         `bson:"status" json:"status"`
	IsVIP         bool               `bson:"is_vip" json:"is_vip"`
	VIPFeatures   []string           `bson:"vip_features,omitempty" json:"vip_features,omitempty"`
	VIPPrice      float64            `bson:"vip_price,omitempty" json:"vip_price,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// TripView is a Trip joined with its office and bus for display.
type TripView struct {
	Trip   `bson:",inline"`
	Office *Office `bson:"office,omitempty" json:"office,omitempty"`
	Bus    *Bus    `bson:"bus,omitempty" json:"bus,omitempty"`
}

// TripFilter narrows trip listings. Date, when set, selects departures within
// [Date at 00:00, next calendar day at 00:00).
type TripFilter struct {
	DepartureCity string
	ArrivalCity   string
	Date          *time.Time
}
