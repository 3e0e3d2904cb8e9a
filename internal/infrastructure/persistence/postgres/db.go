package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type txKey struct{}

// DB is shared by the repositories. It implements repository.Transactor:
// inside WithinTx every repository call made with the callback's ctx runs
// on the same transaction.
type DB struct {
	pool *pgxpool.Pool
}

func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return pgx.BeginTxFunc(ctx, db.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (db *DB) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.pool
}

const (
	uniqueViolation        = "23505"
	foreignKeyViolation    = "23503"
	numericValueOutOfRange = "22003"
)

// mapErr turns constraint violations into domain errors.
func mapErr(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s: %s", apperror.ErrConflict, what, pgErr.ConstraintName)
		case foreignKeyViolation:
			return apperror.NotFound("%s: %s", what, pgErr.ConstraintName)
		case numericValueOutOfRange:
			v := apperror.NewValidationError()
			v.Add(outOfRangeField(pgErr), "out of range")
			return fmt.Errorf("%s: %w", what, v)
		}
	}
	return err
}

func outOfRangeField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return "value"
}
