package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/models"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	user, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Omar H",
		Phone:    "0791112222",
		Email:    "omar@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleCustomer {
		t.Errorf("expected default customer role, got %q", user.Role)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	token, logged, err := svc.Login(context.Background(), "0791112222", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if logged.ID != user.ID {
		t.Error("login returned the wrong user")
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	in := RegisterInput{FullName: "A", Phone: "0790001111", Password: "pw123456"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	in.FullName = "B"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate phone, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	if _, err := svc.Register(context.Background(), RegisterInput{
		FullName: "A", Phone: "0790001111", Email: "same@example.com", Password: "pw123456",
	}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "B", Phone: "0790002222", Email: "same@example.com", Password: "pw123456",
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestRegisterStaffNeedsOffice(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Clerk", Phone: "0790003333", Password: "pw123456",
		Role: models.RoleOfficeEmployee,
	})
	if !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for staff without office, got %v", err)
	}

	office := primitive.NewObjectID().Hex()
	staff, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Clerk", Phone: "0790003333", Password: "pw123456",
		Role: models.RoleOfficeEmployee, OfficeID: office,
	})
	if err != nil {
		t.Fatalf("staff Register failed: %v", err)
	}
	if staff.OfficeID == nil || staff.OfficeID.Hex() != office {
		t.Error("staff office was not persisted")
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "X", Phone: "0790004444", Password: "pw123456", Role: "superuser",
	})
	if !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown role, got %v", err)
	}
}

func TestLoginFailuresAreDistinct(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	if _, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Omar H", Phone: "0791112222", Password: "hunter22",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unknown phone is NotFound; a wrong password is an invalid-credentials
	// rejection of the request, never a 401-class token failure.
	if _, _, err := svc.Login(context.Background(), "0799999999", "hunter22"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown phone, got %v", err)
	}
	_, _, err := svc.Login(context.Background(), "0791112222", "wrong")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if errors.Is(err, models.ErrUnauthorized) {
		t.Error("wrong password must not surface as a token failure")
	}
}
