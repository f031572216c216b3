package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/models"
)

func newOfficeFixture() (*OfficeService, *fakeOfficeRepo, *fakeBusRepo, *fakeTripRepo, *fakeUserRepo) {
	offices := newFakeOfficeRepo()
	buses := newFakeBusRepo()
	trips := newFakeTripRepo()
	users := newFakeUserRepo()
	return NewOfficeService(offices, buses, trips, users), offices, buses, trips, users
}

func TestCreateOfficeDefaultsToPending(t *testing.T) {
	svc, _, _, _, _ := newOfficeFixture()

	office, err := svc.CreateOffice(context.Background(), OfficeInput{
		OfficeName:  "JETT",
		City:        "Amman",
		PhoneNumber: "064444444",
		Address:     "Abdali",
	})
	if err != nil {
		t.Fatalf("CreateOffice failed: %v", err)
	}
	if office.Status != models.OfficePending {
		t.Errorf("expected pending status, got %q", office.Status)
	}
}

func TestCreateOfficeRequiresFields(t *testing.T) {
	svc, _, _, _, _ := newOfficeFixture()

	_, err := svc.CreateOffice(context.Background(), OfficeInput{OfficeName: "JETT"})
	if !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestDeleteOfficeRefusesWhileReferenced(t *testing.T) {
	svc, offices, buses, trips, users := newOfficeFixture()

	office, _ := offices.CreateOffice(context.Background(), &models.Office{OfficeName: "JETT"})

	bus, _ := buses.CreateBus(context.Background(), &models.Bus{OfficeID: office.ID})
	if err := svc.DeleteOffice(context.Background(), office.ID.Hex()); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict while a bus references the office, got %v", err)
	}
	if err := buses.DeleteBus(context.Background(), bus.ID); err != nil {
		t.Fatalf("cleanup bus failed: %v", err)
	}

	trip, _ := trips.CreateTrip(context.Background(), &models.Trip{OfficeID: office.ID})
	if err := svc.DeleteOffice(context.Background(), office.ID.Hex()); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict while a trip references the office, got %v", err)
	}
	if err := trips.DeleteTrip(context.Background(), trip.ID); err != nil {
		t.Fatalf("cleanup trip failed: %v", err)
	}

	staff, _ := users.CreateUser(context.Background(), &models.User{
		Phone: "0790005555", Role: models.RoleOfficeEmployee, OfficeID: &office.ID,
	})
	if err := svc.DeleteOffice(context.Background(), office.ID.Hex()); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict while staff belong to the office, got %v", err)
	}
	if err := users.DeleteUser(context.Background(), staff.ID); err != nil {
		t.Fatalf("cleanup user failed: %v", err)
	}

	if err := svc.DeleteOffice(context.Background(), office.ID.Hex()); err != nil {
		t.Fatalf("DeleteOffice failed once unreferenced: %v", err)
	}
}

func TestDeleteOfficeUnknown(t *testing.T) {
	svc, _, _, _, _ := newOfficeFixture()

	if err := svc.DeleteOffice(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
