package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/helpers"
	"github.com/omarhamdan/safra/internal/models"
)

type UserService struct {
	users    models.UserRepo
	bookings models.BookingRepo
}

func NewUserService(users models.UserRepo, bookings models.BookingRepo) *UserService {
	return &UserService{
		users:    users,
		bookings: bookings,
	}
}

func (us *UserService) ListUsers(ctx context.Context) ([]*models.UserView, error) {
	return us.users.ListUsers(ctx)
}

// GetUser returns one user. Customers may read only themselves; staff may
// read anyone.
func (us *UserService) GetUser(ctx context.Context, id, requesterID string, role models.Role) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", models.ErrInvalid)
	}
	if !role.IsStaff() && id != requesterID {
		return nil, fmt.Errorf("%w: access denied", models.ErrForbidden)
	}

	user, err := us.users.GetUserByID(ctx, oid)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	return user, err
}

// UpdateUser applies a partial update. A plain "password" field is rehashed
// into password_hash and never stored as given. Customers may update only
// themselves and may not change their role.
func (us *UserService) UpdateUser(ctx context.Context, id, requesterID string, role models.Role, fields map[string]interface{}) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", models.ErrInvalid)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalid)
	}
	if !role.IsStaff() && id != requesterID {
		return nil, fmt.Errorf("%w: access denied", models.ErrForbidden)
	}

	delete(fields, "_id")
	delete(fields, "password_hash")
	if role != models.RoleAdmin {
		delete(fields, "role")
		delete(fields, "office_id")
	}
	if pw, ok := fields["password"].(string); ok {
		delete(fields, "password")
		if pw != "" {
			hash, err := helpers.HashPassword(pw)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %v", err)
			}
			fields["password_hash"] = hash
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", models.ErrInvalid)
	}

	updated, err := us.users.UpdateUser(ctx, oid, fields)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	if err == models.ErrConflict {
		return nil, fmt.Errorf("%w: phone or email already in use", models.ErrConflict)
	}
	return updated, err
}

// DeleteUser refuses while bookings still reference the account.
func (us *UserService) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", models.ErrInvalid)
	}

	if n, err := us.bookings.CountBookingsByUser(ctx, oid); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("%w: user still has bookings", models.ErrConflict)
	}

	if err := us.users.DeleteUser(ctx, oid); err == models.ErrNotFound {
		return fmt.Errorf("%w: user not found", models.ErrNotFound)
	} else if err != nil {
		return err
	}
	return nil
}
