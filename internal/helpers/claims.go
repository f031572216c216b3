package helpers

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/omarhamdan/safra/internal/models"
)

// Claims is what a bearer token carries: the user's id (as the registered
// subject), their role, and their office affiliation when they have one.
type Claims struct {
	Role     models.Role `json:"role"`
	OfficeID string      `json:"office_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

func (c *Claims) IsStaff() bool {
	return c.Role.IsStaff()
}

// IsOwner reports whether the token belongs to the given user id.
func (c *Claims) IsOwner(userID string) bool {
	return c.Subject == userID
}
