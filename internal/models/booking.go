package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const BookingColName = "bookings"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking reserves one seat on one trip for one user. The seat invariant —
// at most one confirmed booking per (trip_id, seat_num) — is enforced by a
// partial unique index, see MongodbRepo.EnsureIndexes.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TripID        primitive.ObjectID `bson:"trip_id" json:"trip_id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	SeatNum       string             `bson:"seat_num" json:"seat_num"`
	Status        BookingStatus      `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"payment_status"`
	QRCode        string             `bson:"qr_code,omitempty" json:"qr_code,omitempty"`
	ProofImage    string             `bson:"proof_image,omitempty" json:"proof_image,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// BookingView is a Booking joined with its trip and the owner's contact
// details for list responses.
type BookingView struct {
	Booking   `bson:",inline"`
	Trip      *Trip  `bson:"trip,omitempty" json:"trip,omitempty"`
	UserName  string `bson:"user_name,omitempty" json:"user_name,omitempty"`
	UserEmail string `bson:"user_email,omitempty" json:"user_email,omitempty"`
}
