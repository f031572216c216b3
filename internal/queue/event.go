// Package queue carries booking side effects off the request path. A
// confirmed booking publishes a BookingConfirmedEvent; the consumer delivers
// the confirmation email. Jobs are keyed by booking id so redelivery is
// harmless.
package queue

// BookingConfirmedEvent is published after a booking is persisted. It carries
// everything the consumer needs to send the confirmation email without
// querying the database again.
type BookingConfirmedEvent struct {
	BookingID     string `json:"booking_id"`
	TripID        string `json:"trip_id"`
	UserID        string `json:"user_id"`
	UserEmail     string `json:"user_email,omitempty"`
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
	SeatNum       string `json:"seat_num"`
	QRCode        string `json:"qr_code,omitempty"`
	ConfirmedAt   string `json:"confirmed_at"`
}
