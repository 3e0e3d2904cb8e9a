package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/permission"
)

type PermissionRepository struct {
	s *Store
}

func (r *PermissionRepository) Grant(ctx context.Context, grants ...permission.Grant) error {
	r.s.write(func(st *state) {
		for _, g := range grants {
			st.grants[g] = struct{}{}
		}
	})
	return nil
}

func (r *PermissionRepository) HasGrant(ctx context.Context, g permission.Grant) (bool, error) {
	ok := false
	r.s.read(func(st *state) {
		_, ok = st.grants[g]
	})
	return ok, nil
}

func (r *PermissionRepository) ObjectIDs(ctx context.Context, principalID uuid.UUID, objType permission.ObjectType, c permission.Capability) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	r.s.read(func(st *state) {
		for g := range st.grants {
			if g.PrincipalID == principalID && g.Object.Type == objType && g.Capability == c {
				ids = append(ids, g.Object.ID)
			}
		}
	})
	return ids, nil
}

func (r *PermissionRepository) DeleteObject(ctx context.Context, obj permission.ObjectRef) error {
	r.s.write(func(st *state) {
		for g := range st.grants {
			if g.Object == obj {
				delete(st.grants, g)
			}
		}
	})
	return nil
}
