package models

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleCustomer, RoleOfficeEmployee, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	for _, r := range []Role{"", "superuser", "Admin", "CUSTOMER"} {
		if r.Valid() {
			t.Errorf("role %q should be invalid", r)
		}
	}
}

func TestRoleIsStaff(t *testing.T) {
	if RoleCustomer.IsStaff() {
		t.Error("customer is not staff")
	}
	if !RoleOfficeEmployee.IsStaff() || !RoleAdmin.IsStaff() {
		t.Error("office employees and admins are staff")
	}
}

func TestAsRepoError(t *testing.T) {
	if AsRepoError(nil) != nil {
		t.Error("nil must stay nil")
	}
	if got := AsRepoError(mongo.ErrNoDocuments); !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNoDocuments should map to ErrNotFound, got %v", got)
	}
	other := errors.New("network down")
	if got := AsRepoError(other); got != other {
		t.Errorf("unrelated errors must pass through, got %v", got)
	}
}
