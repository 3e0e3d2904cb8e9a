package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MamaFati/farmDirect/internal/domain/permission"
)

type PermissionRepository struct {
	db *DB
}

func NewPermissionRepository(db *DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Grant(ctx context.Context, grants ...permission.Grant) error {
	const query = `
		INSERT INTO permission_grants (principal_id, object_type, object_id, capability)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, g := range grants {
		batch.Queue(query, g.PrincipalID, string(g.Object.Type), g.Object.ID, g.Capability.String())
	}
	return r.db.q(ctx).SendBatch(ctx, batch).Close()
}

func (r *PermissionRepository) HasGrant(ctx context.Context, g permission.Grant) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM permission_grants
			WHERE principal_id = $1 AND object_type = $2 AND object_id = $3 AND capability = $4
		);
	`
	var ok bool
	err := r.db.q(ctx).QueryRow(ctx, query,
		g.PrincipalID, string(g.Object.Type), g.Object.ID, g.Capability.String(),
	).Scan(&ok)
	return ok, err
}

func (r *PermissionRepository) ObjectIDs(ctx context.Context, principalID uuid.UUID, objType permission.ObjectType, c permission.Capability) ([]uuid.UUID, error) {
	const query = `
		SELECT object_id FROM permission_grants
		WHERE principal_id = $1 AND object_type = $2 AND capability = $3;
	`
	rows, err := r.db.q(ctx).Query(ctx, query, principalID, string(objType), c.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PermissionRepository) DeleteObject(ctx context.Context, obj permission.ObjectRef) error {
	_, err := r.db.q(ctx).Exec(ctx,
		`DELETE FROM permission_grants WHERE object_type = $1 AND object_id = $2;`,
		string(obj.Type), obj.ID,
	)
	return err
}
