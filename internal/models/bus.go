package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const BusColName = "buses"

type Bus struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OfficeID   primitive.ObjectID `bson:"office_id" json:"office_id"`
	BusNumber  string             `bson:"bus_number,omitempty" json:"bus_number,omitempty"`
	SeatCount  int                `bson:"seat_count" json:"seat_count"`
	LayoutType string             `bson:"layout_type,omitempty" json:"layout_type,omitempty"` // e.g. "2+2", "2+1"
	ModelName  string             `bson:"model_name,omitempty" json:"model_name,omitempty"`
}

// BusView is a Bus joined with its office name for display.
type BusView struct {
	Bus        `bson:",inline"`
	OfficeName string `bson:"office_name,omitempty" json:"office_name,omitempty"`
}
