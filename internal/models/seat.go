package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SeatColName = "seats"

type SeatPosition string

const (
	SeatLeft   SeatPosition = "left"
	SeatRight  SeatPosition = "right"
	SeatMiddle SeatPosition = "middle"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBlocked   SeatStatus = "blocked"
)

// Seat describes one position in a bus layout. Seats carry no booking state;
// whether a seat is taken on a given trip is decided by the bookings
// collection.
type Seat struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusID    primitive.ObjectID `bson:"bus_id" json:"bus_id"`
	SeatNum  string             `bson:"seat_num" json:"seat_num" validate:"required"`
	Row      int                `bson:"row" json:"row"`
	Column   int                `bson:"column" json:"column"`
	Position SeatPosition       `bson:"position" json:"position"`
	Status   SeatStatus         `bson:"status" json:"status"`
}
