package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/models"
)

type OfficeService struct {
	offices models.OfficeRepo
	buses   models.BusRepo
	trips   models.TripRepo
	users   models.UserRepo
}

func NewOfficeService(offices models.OfficeRepo, buses models.BusRepo, trips models.TripRepo, users models.UserRepo) *OfficeService {
	return &OfficeService{
		offices: offices,
		buses:   buses,
		trips:   trips,
		users:   users,
	}
}

type OfficeInput struct {
	OfficeName  string `json:"office_name" validate:"required"`
	City        string `json:"city" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Address     string `json:"address" validate:"required"`
	LogoURL     string `json:"-"`
}

func (os *OfficeService) CreateOffice(ctx context.Context, in OfficeInput) (*models.Office, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: missing required fields", models.ErrInvalid)
	}

	office := &models.Office{
		OfficeName:  in.OfficeName,
		City:        in.City,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		LogoURL:     in.LogoURL,
		Status:      models.OfficePending,
		CreatedAt:   time.Now().UTC(),
	}
	return os.offices.CreateOffice(ctx, office)
}

func (os *OfficeService) ListOffices(ctx context.Context) ([]*models.Office, error) {
	return os.offices.ListOffices(ctx)
}

func (os *OfficeService) UpdateOffice(ctx context.Context, id string, fields map[string]interface{}) (*models.Office, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid office id", models.ErrInvalid)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalid)
	}
	delete(fields, "_id")

	updated, err := os.offices.UpdateOffice(ctx, oid, fields)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: office not found", models.ErrNotFound)
	}
	return updated, err
}

// DeleteOffice refuses to remove an office that buses, trips or users still
// reference; there is no cascade, so deleting would leave dangling ids.
func (os *OfficeService) DeleteOffice(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid office id", models.ErrInvalid)
	}

	if n, err := os.buses.CountBusesByOffice(ctx, oid); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("%w: office still has buses", models.ErrConflict)
	}
	if n, err := os.trips.CountTripsByOffice(ctx, oid); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("%w: office still has trips", models.ErrConflict)
	}
	if n, err := os.users.CountUsersByOffice(ctx, oid); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("%w: office still has staff accounts", models.ErrConflict)
	}

	if err := os.offices.DeleteOffice(ctx, oid); err == models.ErrNotFound {
		return fmt.Errorf("%w: office not found", models.ErrNotFound)
	} else if err != nil {
		return err
	}
	return nil
}
