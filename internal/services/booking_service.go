package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/helpers"
	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/queue"
)

// BookingPublisher hands confirmed-booking events to the broker.
type BookingPublisher interface {
	Enabled() bool
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// BookingService owns seat admission: deciding whether a (trip, seat) request
// may become a confirmed booking, and triggering the QR/email side effects
// that follow a successful admission.
type BookingService struct {
	bookings  models.BookingRepo
	trips     models.TripRepo
	users     models.UserRepo
	publisher BookingPublisher
	sender    queue.ConfirmationSender
	logger    *slog.Logger

	// qrEncode is swappable in tests; defaults to helpers.QRCodeDataURI.
	qrEncode func(payload string) (string, error)
}

func NewBookingService(
	bookings models.BookingRepo,
	trips models.TripRepo,
	users models.UserRepo,
	publisher BookingPublisher,
	sender queue.ConfirmationSender,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		trips:     trips,
		users:     users,
		publisher: publisher,
		sender:    sender,
		logger:    logger,
		qrEncode:  helpers.QRCodeDataURI,
	}
}

type AdmitInput struct {
	TripID     string
	SeatNum    string
	UserID     string
	ProofImage string
}

// Admit checks availability of (trip, seat) and creates a confirmed booking,
// or rejects with ErrConflict. The read is a courtesy check; the partial
// unique index decides races, and its duplicate-key error is reported as the
// same conflict. QR and email enrichment run after the insert and never undo
// an admitted booking.
func (bs *BookingService) Admit(ctx context.Context, in AdmitInput) (*models.Booking, error) {
	in.SeatNum = strings.TrimSpace(in.SeatNum)
	if in.TripID == "" || in.SeatNum == "" {
		return nil, fmt.Errorf("%w: trip_id and seat_num are required", models.ErrInvalid)
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user identity is required", models.ErrInvalid)
	}

	tripID, err := primitive.ObjectIDFromHex(in.TripID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trip_id", models.ErrInvalid)
	}
	userID, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", models.ErrInvalid)
	}

	trip, err := bs.trips.GetTripByID(ctx, tripID)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: trip not found", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	taken, err := bs.bookings.SeatTaken(ctx, tripID, in.SeatNum)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: seat already booked", models.ErrConflict)
	}

	booking := &models.Booking{
		TripID:        tripID,
		UserID:        userID,
		SeatNum:       in.SeatNum,
		Status:        models.BookingConfirmed,
		PaymentStatus: models.PaymentUnpaid,
		ProofImage:    in.ProofImage,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := bs.bookings.CreateBooking(ctx, booking)
	if err == models.ErrConflict {
		// Lost the race: someone confirmed the seat between the check and
		// the insert.
		return nil, fmt.Errorf("%w: seat already booked", models.ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	bs.attachQRCode(ctx, created)
	bs.notify(ctx, created, &trip.Trip)

	return created, nil
}

// attachQRCode generates and persists the booking's QR payload. Failure is
// logged only; the booking stays confirmed with an empty QR field.
func (bs *BookingService) attachQRCode(ctx context.Context, booking *models.Booking) {
	payload := fmt.Sprintf("%s|%s|%s", booking.ID.Hex(), booking.TripID.Hex(), booking.UserID.Hex())
	qr, err := bs.qrEncode(payload)
	if err != nil {
		bs.logger.Error("qr code generation failed", "booking_id", booking.ID.Hex(), "error", err)
		return
	}
	if err := bs.bookings.SetBookingQRCode(ctx, booking.ID, qr); err != nil {
		bs.logger.Error("failed to persist qr code", "booking_id", booking.ID.Hex(), "error", err)
		return
	}
	booking.QRCode = qr
}

// notify publishes the confirmation event for the mail consumer. If the
// broker is unavailable it falls back to a direct async send. Every failure
// here is logged and swallowed.
func (bs *BookingService) notify(ctx context.Context, booking *models.Booking, trip *models.Trip) {
	user, err := bs.users.GetUserByID(ctx, booking.UserID)
	if err != nil {
		bs.logger.Error("failed to load booking owner for notification", "booking_id", booking.ID.Hex(), "error", err)
		return
	}
	if user.Email == "" {
		return
	}

	event := queue.BookingConfirmedEvent{
		BookingID:     booking.ID.Hex(),
		TripID:        booking.TripID.Hex(),
		UserID:        booking.UserID.Hex(),
		UserEmail:     user.Email,
		DepartureCity: trip.DepartureCity,
		ArrivalCity:   trip.ArrivalCity,
		SeatNum:       booking.SeatNum,
		QRCode:        booking.QRCode,
		ConfirmedAt:   booking.CreatedAt.Format(time.RFC3339),
	}

	if bs.publisher != nil && bs.publisher.Enabled() {
		err := bs.publisher.PublishBookingConfirmed(ctx, event)
		if err == nil {
			return
		}
		bs.logger.Warn("booking event publish failed, sending mail directly", "booking_id", event.BookingID, "error", err)
	}

	if bs.sender == nil {
		return
	}
	go func() {
		if err := bs.sender.SendBookingConfirmation(event.UserEmail, event.DepartureCity, event.ArrivalCity, event.SeatNum, event.QRCode); err != nil {
			bs.logger.Error("confirmation email failed", "booking_id", event.BookingID, "error", err)
		}
	}()
}

// List returns bookings visible to the requester: customers see their own,
// staff see everything.
func (bs *BookingService) List(ctx context.Context, requesterID string, role models.Role) ([]*models.BookingView, error) {
	if role.IsStaff() {
		return bs.bookings.ListBookings(ctx, nil)
	}
	uid, err := primitive.ObjectIDFromHex(requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", models.ErrInvalid)
	}
	return bs.bookings.ListBookings(ctx, &uid)
}

// Cancel flips the booking's status to cancelled and nothing else. Customers
// may only cancel their own bookings; staff may cancel any.
func (bs *BookingService) Cancel(ctx context.Context, bookingID, requesterID string, role models.Role) (*models.Booking, error) {
	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", models.ErrInvalid)
	}

	booking, err := bs.bookings.GetBookingByID(ctx, id)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !role.IsStaff() && booking.UserID.Hex() != requesterID {
		return nil, fmt.Errorf("%w: you can only cancel your own bookings", models.ErrForbidden)
	}

	return bs.bookings.UpdateBookingStatus(ctx, id, models.BookingCancelled)
}

// Get returns one booking, owner-or-staff gated. Used by the e-ticket
// endpoint.
func (bs *BookingService) Get(ctx context.Context, bookingID, requesterID string, role models.Role) (*models.Booking, error) {
	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", models.ErrInvalid)
	}
	booking, err := bs.bookings.GetBookingByID(ctx, id)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: booking not found", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !role.IsStaff() && booking.UserID.Hex() != requesterID {
		return nil, fmt.Errorf("%w: access denied", models.ErrForbidden)
	}
	return booking, nil
}
