package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/omarhamdan/safra/internal/models"
)

// TicketService renders a printable e-ticket PDF for one booking.
type TicketService struct {
	bookings *BookingService
	trips    models.TripRepo

	// Loader is swappable in tests; when nil the real repositories are used.
	Loader func(ctx context.Context, bookingID, requesterID string, role models.Role) (ticketData, error)
}

func NewTicketService(bookings *BookingService, trips models.TripRepo) *TicketService {
	return &TicketService{
		bookings: bookings,
		trips:    trips,
	}
}

type ticketData struct {
	BookingID     string
	SeatNum       string
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
	DepartureCity string
	ArrivalCity   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	OfficeName    string
	TotalPrice    float64
	IsVIP         bool
}

// GenerateETicket loads the booking (owner-or-staff gated through the
// booking service) and renders it as a PDF. Returns the bytes and a
// download filename.
func (ts *TicketService) GenerateETicket(ctx context.Context, bookingID, requesterID string, role models.Role) ([]byte, string, error) {
	data, err := ts.loadTicketData(ctx, bookingID, requesterID, role)
	if err != nil {
		return nil, "", err
	}
	return buildETicketPDF(data)
}

func (ts *TicketService) loadTicketData(ctx context.Context, bookingID, requesterID string, role models.Role) (ticketData, error) {
	if ts.Loader != nil {
		return ts.Loader(ctx, bookingID, requesterID, role)
	}

	var out ticketData
	booking, err := ts.bookings.Get(ctx, bookingID, requesterID, role)
	if err != nil {
		return out, err
	}
	out.BookingID = booking.ID.Hex()
	out.SeatNum = booking.SeatNum
	out.Status = booking.Status
	out.PaymentStatus = booking.PaymentStatus

	trip, err := ts.trips.GetTripByID(ctx, booking.TripID)
	if err != nil {
		return out, err
	}
	out.DepartureCity = trip.DepartureCity
	out.ArrivalCity = trip.ArrivalCity
	out.DepartureTime = trip.DepartureTime
	out.ArrivalTime = trip.ArrivalTime
	out.TotalPrice = trip.TotalPrice
	out.IsVIP = trip.IsVIP
	if trip.Office != nil {
		out.OfficeName = trip.Office.OfficeName
	}
	return out, nil
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	service := "Standard"
	if d.IsVIP {
		service = "VIP"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking        : %s", safe(d.BookingID, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(d.DepartureCity, "-"), safe(d.ArrivalCity, "-")),
		fmt.Sprintf("Departure      : %s", formatTicketTime(d.DepartureTime)),
		fmt.Sprintf("Arrival        : %s", formatTicketTime(d.ArrivalTime)),
		fmt.Sprintf("Seat           : %s", safe(d.SeatNum, "-")),
		fmt.Sprintf("Service        : %s", service),
		fmt.Sprintf("Operator       : %s", safe(d.OfficeName, "-")),
		fmt.Sprintf("Price          : %.2f", d.TotalPrice),
		fmt.Sprintf("Status         : %s", d.Status),
		fmt.Sprintf("Payment        : %s", d.PaymentStatus),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger and one seat. Please present it at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", d.BookingID, safeFilenamePart(d.SeatNum))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "ticket"
	}
	return b.String()
}

func formatTicketTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
