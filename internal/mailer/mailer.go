// Package mailer sends transactional email over SMTP. Delivery failures are
// reported to the caller but are never critical: booking confirmation mail is
// a courtesy, not part of the booking outcome.
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendBookingConfirmation emails the route, seat number and embedded QR code
// to the booking owner. The QR arrives as a data URI so the image needs no
// attachment handling.
func (m *Mailer) SendBookingConfirmation(to, departureCity, arrivalCity, seatNum, qrDataURI string) error {
	html := fmt.Sprintf(`
		<h3 style="font-family: sans-serif;">Booking Confirmed</h3>
		<p>Trip: <strong>%s &rarr; %s</strong></p>
		<p>Seat Number: <strong>%s</strong></p>
		<p>Your QR Code:</p>
		<img src="%s" alt="QR Code"/>
	`, departureCity, arrivalCity, seatNum, qrDataURI)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Booking Confirmation")
	msg.SetBody("text/html", html)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %v", err)
	}
	return nil
}
