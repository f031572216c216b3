package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/models"
)

func newBusFixture() (*BusService, *fakeBusRepo, *fakeSeatRepo, *fakeTripRepo, *models.Office) {
	buses := newFakeBusRepo()
	seats := newFakeSeatRepo()
	offices := newFakeOfficeRepo()
	trips := newFakeTripRepo()

	office, _ := offices.CreateOffice(context.Background(), &models.Office{OfficeName: "JETT"})
	return NewBusService(buses, seats, offices, trips), buses, seats, trips, office
}

func TestCreateBusRequiresExistingOffice(t *testing.T) {
	svc, _, _, _, office := newBusFixture()

	bus, err := svc.CreateBus(context.Background(), BusInput{
		OfficeID:  office.ID.Hex(),
		BusNumber: "B-7",
		SeatCount: 40,
	})
	if err != nil {
		t.Fatalf("CreateBus failed: %v", err)
	}
	if bus.OfficeID != office.ID {
		t.Error("bus not linked to its office")
	}

	if _, err := svc.CreateBus(context.Background(), BusInput{OfficeID: primitive.NewObjectID().Hex()}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown office, got %v", err)
	}
	if _, err := svc.CreateBus(context.Background(), BusInput{}); !errors.Is(err, models.ErrInvalid) {
		t.Errorf("expected ErrInvalid for missing office_id, got %v", err)
	}
}

func TestDeleteBusRefusesWithTrips(t *testing.T) {
	svc, buses, _, trips, office := newBusFixture()

	bus, _ := buses.CreateBus(context.Background(), &models.Bus{OfficeID: office.ID})
	trip, _ := trips.CreateTrip(context.Background(), &models.Trip{OfficeID: office.ID, BusID: bus.ID})

	if err := svc.DeleteBus(context.Background(), bus.ID.Hex()); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict while a trip uses the bus, got %v", err)
	}
	if err := trips.DeleteTrip(context.Background(), trip.ID); err != nil {
		t.Fatalf("cleanup trip failed: %v", err)
	}
	if err := svc.DeleteBus(context.Background(), bus.ID.Hex()); err != nil {
		t.Fatalf("DeleteBus failed: %v", err)
	}
}

func TestReplaceSeatsValidatesLayout(t *testing.T) {
	svc, buses, _, _, office := newBusFixture()

	bus, _ := buses.CreateBus(context.Background(), &models.Bus{OfficeID: office.ID})

	_, err := svc.ReplaceSeats(context.Background(), bus.ID.Hex(), []*models.Seat{
		{SeatNum: "1A"}, {SeatNum: ""},
	})
	if !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for missing seat_num, got %v", err)
	}

	_, err = svc.ReplaceSeats(context.Background(), bus.ID.Hex(), []*models.Seat{
		{SeatNum: "1A"}, {SeatNum: "1A"},
	})
	if !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for duplicate seat_num, got %v", err)
	}

	seats, err := svc.ReplaceSeats(context.Background(), bus.ID.Hex(), []*models.Seat{
		{SeatNum: "1A"}, {SeatNum: "1B", Position: models.SeatLeft, Status: models.SeatBlocked},
	})
	if err != nil {
		t.Fatalf("ReplaceSeats failed: %v", err)
	}
	if seats[0].Position != models.SeatRight || seats[0].Status != models.SeatAvailable {
		t.Error("defaults not applied to first seat")
	}
	if seats[1].Position != models.SeatLeft || seats[1].Status != models.SeatBlocked {
		t.Error("explicit values overwritten on second seat")
	}

	got, err := svc.ListSeats(context.Background(), bus.ID.Hex())
	if err != nil {
		t.Fatalf("ListSeats failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(got))
	}
}

func TestListSeatsUnknownBus(t *testing.T) {
	svc, _, _, _, _ := newBusFixture()

	if _, err := svc.ListSeats(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
