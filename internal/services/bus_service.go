package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/models"
)

type BusService struct {
	buses   models.BusRepo
	seats   models.SeatRepo
	offices models.OfficeRepo
	trips   models.TripRepo
}

func NewBusService(buses models.BusRepo, seats models.SeatRepo, offices models.OfficeRepo, trips models.TripRepo) *BusService {
	return &BusService{
		buses:   buses,
		seats:   seats,
		offices: offices,
		trips:   trips,
	}
}

type BusInput struct {
	OfficeID   string `json:"office_id" validate:"required"`
	BusNumber  string `json:"bus_number"`
	SeatCount  int    `json:"seat_count"`
	LayoutType string `json:"layout_type"`
	ModelName  string `json:"model_name"`
}

func (bs *BusService) CreateBus(ctx context.Context, in BusInput) (*models.Bus, error) {
	if in.OfficeID == "" {
		return nil, fmt.Errorf("%w: office_id is required", models.ErrInvalid)
	}
	officeID, err := primitive.ObjectIDFromHex(in.OfficeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid office_id", models.ErrInvalid)
	}
	if _, err := bs.offices.GetOfficeByID(ctx, officeID); err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: office not found", models.ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	bus := &models.Bus{
		OfficeID:   officeID,
		BusNumber:  in.BusNumber,
		SeatCount:  in.SeatCount,
		LayoutType: in.LayoutType,
		ModelName:  in.ModelName,
	}
	return bs.buses.CreateBus(ctx, bus)
}

func (bs *BusService) ListBuses(ctx context.Context) ([]*models.BusView, error) {
	return bs.buses.ListBuses(ctx)
}

func (bs *BusService) UpdateBus(ctx context.Context, id string, fields map[string]interface{}) (*models.Bus, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus id", models.ErrInvalid)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalid)
	}
	delete(fields, "_id")

	updated, err := bs.buses.UpdateBus(ctx, oid, fields)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: bus not found", models.ErrNotFound)
	}
	return updated, err
}

// DeleteBus refuses while trips still reference the bus.
func (bs *BusService) DeleteBus(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid bus id", models.ErrInvalid)
	}

	if n, err := bs.trips.CountTripsByBus(ctx, oid); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("%w: bus still has trips", models.ErrConflict)
	}

	if err := bs.buses.DeleteBus(ctx, oid); err == models.ErrNotFound {
		return fmt.Errorf("%w: bus not found", models.ErrNotFound)
	} else if err != nil {
		return err
	}
	return nil
}

func (bs *BusService) ListSeats(ctx context.Context, busID string) ([]*models.Seat, error) {
	oid, err := primitive.ObjectIDFromHex(busID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus id", models.ErrInvalid)
	}
	if _, err := bs.buses.GetBusByID(ctx, oid); err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: bus not found", models.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return bs.seats.ListSeatsByBus(ctx, oid)
}

// ReplaceSeats swaps the bus's seat layout for the provided one. Seat numbers
// must be present and unique within the layout.
func (bs *BusService) ReplaceSeats(ctx context.Context, busID string, seats []*models.Seat) ([]*models.Seat, error) {
	oid, err := primitive.ObjectIDFromHex(busID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus id", models.ErrInvalid)
	}
	if _, err := bs.buses.GetBusByID(ctx, oid); err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: bus not found", models.ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		if s.SeatNum == "" {
			return nil, fmt.Errorf("%w: every seat needs a seat_num", models.ErrInvalid)
		}
		if seen[s.SeatNum] {
			return nil, fmt.Errorf("%w: duplicate seat_num %q in layout", models.ErrInvalid, s.SeatNum)
		}
		seen[s.SeatNum] = true
		if s.Position == "" {
			s.Position = models.SeatRight
		}
		if s.Status == "" {
			s.Status = models.SeatAvailable
		}
	}
	return bs.seats.ReplaceSeatsForBus(ctx, oid, seats)
}
