// Package storefront contains the application services driving the store
// lifecycle: product page decisions, checkout fees, and post-payment license
// redemption.
package storefront

import (
	"github.com/google/uuid"

	"github.com/shelfbridge/backend/internal/domain/licensing"
	"github.com/shelfbridge/backend/internal/infrastructure/auth"
)

// Viewer describes the requesting user as extracted from the bearer token.
// A zero Viewer is an anonymous visitor.
type Viewer struct {
	Authenticated bool
	UserID        uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	Roles         []string
}

// CustomerReference derives the vendor account reference for a local user.
// The mapping is fixed so a reader always resolves to the same vendor
// account.
func CustomerReference(userID uuid.UUID) string {
	return "CR_USER_" + userID.String()
}

// Reference returns the viewer's vendor account reference
func (v Viewer) Reference() string {
	return CustomerReference(v.UserID)
}

// IsInstructor reports whether the viewer carries the instructor role
func (v Viewer) IsInstructor() bool {
	for _, role := range v.Roles {
		if role == auth.RoleInstructor {
			return true
		}
	}
	return false
}

// NewUser builds the vendor account descriptor for provisioning the viewer
func (v Viewer) NewUser() licensing.NewUser {
	return licensing.NewUser{
		Reference: v.Reference(),
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Email:     v.Email,
	}
}
