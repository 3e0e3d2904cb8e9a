package permission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnerGrants(t *testing.T) {
	owner := uuid.New()
	obj := Product(uuid.New())

	grants := OwnerGrants(owner, obj)

	caps := make([]Capability, 0, len(grants))
	for _, g := range grants {
		assert.Equal(t, owner, g.PrincipalID)
		assert.Equal(t, obj, g.Object)
		caps = append(caps, g.Capability)
	}
	assert.ElementsMatch(t, []Capability{View, Change, Delete}, caps)
	assert.Equal(t, "change", Change.String())
}
