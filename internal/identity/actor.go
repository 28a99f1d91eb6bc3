package identity

import (
	"strings"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
)

// Role is the portal role stored in the Users table.
type Role string

const (
	RoleStudent Role = "Student"
	RoleGA      Role = "Graduate Assistant (GA)"
	RoleMentor  Role = "Mentor"
	RoleAdmin   Role = "Admin"
)

// Roles lists every accepted role value.
var Roles = []Role{RoleStudent, RoleGA, RoleMentor, RoleAdmin}

// ParseRole matches s exactly against the known roles.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Actor is the identity on whose behalf an operation runs. It is always
// passed explicitly; nothing in the core reads it from ambient state.
type Actor struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

// Anonymous is the actor for unauthenticated calls such as signup.
var Anonymous = Actor{}

func (a Actor) Authenticated() bool { return a.UserID != "" }

// CanReview reports whether the actor may see the review queue and decide registrations.
func (a Actor) CanReview() bool {
	return a.Role == RoleGA || a.Role == RoleAdmin
}

// CanActFor reports whether the actor may read or write data owned by email.
func (a Actor) CanActFor(email string) bool {
	if !a.Authenticated() {
		return false
	}
	return a.CanReview() || strings.EqualFold(a.Email, email)
}

// RequireFor returns ErrUnauthenticated or ErrForbidden unless CanActFor(email).
func (a Actor) RequireFor(email string) error {
	if !a.Authenticated() {
		return apperrors.ErrUnauthenticated
	}
	if !a.CanActFor(email) {
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireReviewer returns ErrUnauthenticated or ErrForbidden unless CanReview().
func (a Actor) RequireReviewer() error {
	if !a.Authenticated() {
		return apperrors.ErrUnauthenticated
	}
	if !a.CanReview() {
		return apperrors.ErrForbidden
	}
	return nil
}

// String is used as the log field value.
func (a Actor) String() string {
	if !a.Authenticated() {
		return "anonymous"
	}
	return a.UserID
}
