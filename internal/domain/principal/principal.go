package principal

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrUnknownRole = errors.New("unknown role")

type Role int

const (
	RoleUnknown Role = iota
	RoleSeller
	RoleBuyer
)

func (r Role) String() string {
	switch r {
	case RoleSeller:
		return "seller"
	case RoleBuyer:
		return "buyer"
	default:
		return "unknown"
	}
}

// ParseRole maps the identity provider's role claim onto Role. "farmer" and
// "user" are the legacy claim values for sellers and buyers.
func ParseRole(claim string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(claim)) {
	case "seller", "farmer":
		return RoleSeller, nil
	case "buyer", "user":
		return RoleBuyer, nil
	default:
		return RoleUnknown, ErrUnknownRole
	}
}

// Principal is the authenticated actor of a request.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

func New(id uuid.UUID, role Role) Principal {
	return Principal{ID: id, Role: role}
}

func (p Principal) IsSeller() bool { return p.Role == RoleSeller }

func (p Principal) IsBuyer() bool { return p.Role == RoleBuyer }
