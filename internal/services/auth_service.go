package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/helpers"
	"github.com/omarhamdan/safra/internal/models"
)

type AuthService struct {
	users  models.UserRepo
	secret string
}

func NewAuthService(users models.UserRepo, secret string) *AuthService {
	return &AuthService{
		users:  users,
		secret: secret,
	}
}

type RegisterInput struct {
	FullName     string
	Phone        string
	Email        string
	Password     string
	Role         models.Role
	OfficeID     string
	ProfileImage string
}

// Register creates an account. Phone is the login identity and must be
// unique; email is unique when present. Non-customer roles must belong to an
// office. The unique indexes back up the duplicate pre-checks the same way
// the booking index backs up seat admission.
func (as *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.FullName == "" || in.Phone == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: full_name, phone and password are required", models.ErrInvalid)
	}

	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalid, in.Role)
	}

	var officeID *primitive.ObjectID
	if role != models.RoleCustomer {
		if in.OfficeID == "" {
			return nil, fmt.Errorf("%w: office_id is required for staff accounts", models.ErrInvalid)
		}
		oid, err := primitive.ObjectIDFromHex(in.OfficeID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid office_id", models.ErrInvalid)
		}
		officeID = &oid
	}

	if _, err := as.users.GetUserByPhone(ctx, in.Phone); err == nil {
		return nil, fmt.Errorf("%w: phone already in use", models.ErrConflict)
	} else if err != models.ErrNotFound {
		return nil, err
	}
	if in.Email != "" {
		if _, err := as.users.GetUserByEmail(ctx, in.Email); err == nil {
			return nil, fmt.Errorf("%w: email already in use", models.ErrConflict)
		} else if err != models.ErrNotFound {
			return nil, err
		}
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		FullName:     in.FullName,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		OfficeID:     officeID,
		ProfileImage: in.ProfileImage,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := as.users.CreateUser(ctx, user)
	if err == models.ErrConflict {
		return nil, fmt.Errorf("%w: phone or email already in use", models.ErrConflict)
	}
	return created, err
}

// Login verifies phone + password and issues a 7-day bearer token binding
// id, role and office. An unknown phone and a wrong password are distinct
// failures: NotFound vs InvalidCredentials.
func (as *AuthService) Login(ctx context.Context, phone, password string) (string, *models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return "", nil, fmt.Errorf("%w: phone and password are required", models.ErrInvalid)
	}

	user, err := as.users.GetUserByPhone(ctx, phone)
	if err == models.ErrNotFound {
		return "", nil, fmt.Errorf("%w: user not found", models.ErrNotFound)
	}
	if err != nil {
		return "", nil, err
	}

	if !helpers.VerifyPassword(user.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: incorrect password", models.ErrInvalidCredentials)
	}

	officeID := ""
	if user.OfficeID != nil {
		officeID = user.OfficeID.Hex()
	}
	token, err := helpers.GenerateToken(as.secret, user.ID.Hex(), user.Role, officeID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %v", err)
	}
	return token, user, nil
}
