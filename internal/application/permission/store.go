// Package permission is the authorization layer every service consults: a
// role gate plus object-level grants held by the permission repository.
package permission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	domain "github.com/MamaFati/farmDirect/internal/domain/permission"
	"github.com/MamaFati/farmDirect/internal/domain/principal"
	"github.com/MamaFati/farmDirect/internal/domain/repository"
)

type Store struct {
	repo repository.PermissionRepository
}

func NewStore(repo repository.PermissionRepository) *Store {
	return &Store{repo: repo}
}

// RequireRole fails with apperror.ErrForbidden unless p has role.
func RequireRole(p principal.Principal, role principal.Role) error {
	if p.Role != role {
		return apperror.Forbidden("requires role %s", role)
	}
	return nil
}

// Authorize reports whether p holds c on obj. Buyers may view every product;
// everything else needs an explicit grant. A missing grant is (false, nil).
func (s *Store) Authorize(ctx context.Context, p principal.Principal, obj domain.ObjectRef, c domain.Capability) (bool, error) {
	if rolePolicyAllows(p, obj, c) {
		return true, nil
	}
	ok, err := s.repo.HasGrant(ctx, domain.Grant{PrincipalID: p.ID, Object: obj, Capability: c})
	if err != nil {
		return false, fmt.Errorf("check %s grant on %s %s: %w", c, obj.Type, obj.ID, err)
	}
	return ok, nil
}

// GrantOwner hands the creator of obj every capability on it. Call it inside
// the transaction that creates obj.
func (s *Store) GrantOwner(ctx context.Context, ownerID uuid.UUID, obj domain.ObjectRef) error {
	if err := s.repo.Grant(ctx, domain.OwnerGrants(ownerID, obj)...); err != nil {
		return fmt.Errorf("grant owner on %s %s: %w", obj.Type, obj.ID, err)
	}
	return nil
}

// Forget removes every grant on obj; used when obj is deleted.
func (s *Store) Forget(ctx context.Context, obj domain.ObjectRef) error {
	if err := s.repo.DeleteObject(ctx, obj); err != nil {
		return fmt.Errorf("drop grants on %s %s: %w", obj.Type, obj.ID, err)
	}
	return nil
}

// Viewable returns the ids of objType that p may view. all is true when a
// role policy lets p view every object, in which case ids is nil.
func (s *Store) Viewable(ctx context.Context, p principal.Principal, objType domain.ObjectType) (ids []uuid.UUID, all bool, err error) {
	if rolePolicyAllows(p, domain.ObjectRef{Type: objType}, domain.View) {
		return nil, true, nil
	}
	ids, err = s.repo.ObjectIDs(ctx, p.ID, objType, domain.View)
	if err != nil {
		return nil, false, fmt.Errorf("list viewable %s: %w", objType, err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, false, nil
}

func rolePolicyAllows(p principal.Principal, obj domain.ObjectRef, c domain.Capability) bool {
	return p.IsBuyer() && obj.Type == domain.ObjectProduct && c == domain.View
}
