package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConfirmationSender delivers the confirmation email for one event.
type ConfirmationSender interface {
	SendBookingConfirmation(to, departureCity, arrivalCity, seatNum, qrDataURI string) error
}

// StartBookingConsumer connects to the broker, declares the durable
// booking.confirmed queue and consumes it, sending one confirmation email per
// event. It runs a reconnect loop with backoff and never returns under normal
// operation; failed messages are rejected without requeue so a bad payload
// cannot spin the consumer.
func StartBookingConsumer(url string, sender ConfirmationSender, logger *slog.Logger) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("booking consumer: broker dial failed", "error", err, "retry_in", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, sender, logger); err != nil {
			logger.Warn("booking consumer: consume loop ended", "error", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, sender ConfirmationSender, logger *slog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		logger.Warn("booking consumer: set QoS failed", "error", err)
	}

	if _, err := ch.QueueDeclare(bookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(bookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, sender); err != nil {
			logger.Error("booking consumer: handle message failed", "error", err, "message_id", d.MessageId)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, sender ConfirmationSender) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	// No address means nothing to deliver; ack and move on.
	if ev.UserEmail == "" {
		return nil
	}
	return sender.SendBookingConfirmation(ev.UserEmail, ev.DepartureCity, ev.ArrivalCity, ev.SeatNum, ev.QRCode)
}
