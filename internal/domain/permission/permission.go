package permission

import (
	"github.com/google/uuid"
)

type Capability int

const (
	View Capability = iota + 1
	Change
	Delete
)

func (c Capability) String() string {
	switch c {
	case View:
		return "view"
	case Change:
		return "change"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

type ObjectType string

const ObjectProduct ObjectType = "product"

// ObjectRef identifies one object a grant can be attached to.
type ObjectRef struct {
	Type ObjectType
	ID   uuid.UUID
}

func Product(id uuid.UUID) ObjectRef {
	return ObjectRef{Type: ObjectProduct, ID: id}
}

// Grant records that PrincipalID holds Capability on Object.
type Grant struct {
	PrincipalID uuid.UUID
	Object      ObjectRef
	Capability  Capability
}

// OwnerGrants is the full capability set handed to an object's creator.
func OwnerGrants(principalID uuid.UUID, obj ObjectRef) []Grant {
	return []Grant{
		{PrincipalID: principalID, Object: obj, Capability: View},
		{PrincipalID: principalID, Object: obj, Capability: Change},
		{PrincipalID: principalID, Object: obj, Capability: Delete},
	}
}
