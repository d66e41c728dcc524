// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"filmorate/internal/middleware"
	"filmorate/internal/models"
	"filmorate/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes translated at the repository boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// RowDecoder maps the current row of rows onto a record.
type RowDecoder[T any] func(rows *sql.Rows) (T, error)

// BaseRepository executes parameterized SQL through gorm and maps result rows
// with an explicit decoder. Entity repositories embed one per record type.
type BaseRepository[T any] struct {
	db       *gorm.DB
	entity   string
	decode   RowDecoder[T]
	identity func(T) int64
}

// NewBaseRepository builds a BaseRepository for entity. identity is used by
// StreamQuery to drop repeated records and may be nil for record types that
// are never streamed.
func NewBaseRepository[T any](db *gorm.DB, entity string, decode RowDecoder[T], identity func(T) int64) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, entity: entity, decode: decode, identity: identity}
}

// Entity returns the label used in errors, metrics and spans.
func (r *BaseRepository[T]) Entity() string {
	return r.entity
}

// FindOne returns the single row produced by query. No row, and any data
// access failure, is reported as NOT_FOUND with the cause wrapped.
func (r *BaseRepository[T]) FindOne(ctx context.Context, query string, args ...any) (T, error) {
	var zero T
	items, err := r.query(ctx, "find_one", query, args)
	if err != nil {
		r.logError(ctx, "find_one", err)
		notFound := models.NewNotFoundError(r.entity, firstArg(args))
		notFound.Err = err
		return zero, notFound
	}
	if len(items) == 0 {
		return zero, models.NewNotFoundError(r.entity, firstArg(args))
	}
	return items[0], nil
}

// FindMany returns every row produced by query, or an empty slice.
func (r *BaseRepository[T]) FindMany(ctx context.Context, query string, args ...any) ([]T, error) {
	items, err := r.query(ctx, "find_many", query, args)
	if err != nil {
		r.logError(ctx, "find_many", err)
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// StreamQuery returns the rows of query in order, keeping only the first
// record for each identity.
func (r *BaseRepository[T]) StreamQuery(ctx context.Context, query string, args ...any) ([]T, error) {
	items, err := r.query(ctx, "stream", query, args)
	if err != nil {
		r.logError(ctx, "stream", err)
		return nil, models.NewInternalError(err)
	}

	seen := make(map[int64]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		id := r.identity(item)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

// Insert runs an INSERT ... RETURNING <pk> statement and returns the generated key.
func (r *BaseRepository[T]) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, span := observability.StartQuerySpan(ctx, "insert", r.entity)
	done := observability.TrackQuery("insert", r.entity)
	defer done()

	var id sql.NullInt64
	err := r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&id)
	observability.EndSpan(span, err)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, models.NewPersistenceError(fmt.Sprintf("failed to save %s: no generated key returned", r.entity))
	case err != nil:
		r.logError(ctx, "insert", err)
		return 0, r.translate(err)
	case !id.Valid:
		return 0, models.NewPersistenceError(fmt.Sprintf("failed to save %s: no generated key returned", r.entity))
	}
	return id.Int64, nil
}

// Update runs query and reports whether it changed any row.
func (r *BaseRepository[T]) Update(ctx context.Context, query string, args ...any) (bool, error) {
	affected, err := r.exec(ctx, "update", query, args)
	return affected > 0, err
}

// Delete runs query and reports whether it removed any row.
func (r *BaseRepository[T]) Delete(ctx context.Context, query string, args ...any) (bool, error) {
	affected, err := r.exec(ctx, "delete", query, args)
	return affected > 0, err
}

// Exec runs a statement whose affected row count carries no meaning for the
// caller, such as an idempotent INSERT ... ON CONFLICT DO NOTHING.
func (r *BaseRepository[T]) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return r.exec(ctx, "exec", query, args)
}

// BatchInsert inserts rowCount rows in one round trip. prefix is the
// statement up to VALUES, e.g. "INSERT INTO genres_save (film_id, genre_id)",
// and binder returns the column values of row i. A zero rowCount is a no-op.
func (r *BaseRepository[T]) BatchInsert(ctx context.Context, prefix string, rowCount int, binder func(i int) []any) (int64, error) {
	if rowCount == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(" VALUES ")

	var args []any
	for i := 0; i < rowCount; i++ {
		row := binder(i)
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		sb.WriteString(strings.TrimSuffix(strings.Repeat("?, ", len(row)), ", "))
		sb.WriteByte(')')
		args = append(args, row...)
	}

	affected, err := r.exec(ctx, "batch_insert", sb.String(), args)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, &models.AppError{
			Code:    models.CodeNotFound,
			Message: fmt.Sprintf("batch insert of %d %s rows affected nothing", rowCount, r.entity),
		}
	}
	return affected, nil
}

// Transaction runs fn with a repository bound to a single database
// transaction. fn's error rolls the transaction back.
func (r *BaseRepository[T]) Transaction(ctx context.Context, fn func(tx *BaseRepository[T]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithDB(tx))
	})
}

// WithDB returns a copy of the repository that runs against db.
func (r *BaseRepository[T]) WithDB(db *gorm.DB) *BaseRepository[T] {
	clone := *r
	clone.db = db
	return &clone
}

func (r *BaseRepository[T]) query(ctx context.Context, op, query string, args []any) ([]T, error) {
	ctx, span := observability.StartQuerySpan(ctx, op, r.entity)
	done := observability.TrackQuery(op, r.entity)
	defer done()

	items, err := r.scanAll(ctx, query, args)
	observability.EndSpan(span, err)
	return items, err
}

func (r *BaseRepository[T]) scanAll(ctx context.Context, query string, args []any) ([]T, error) {
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := r.decode(rows)
		if err != nil {
			return nil, fmt.Errorf("decode %s row: %w", r.entity, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *BaseRepository[T]) exec(ctx context.Context, op, query string, args []any) (int64, error) {
	ctx, span := observability.StartQuerySpan(ctx, op, r.entity)
	done := observability.TrackQuery(op, r.entity)
	defer done()

	res := r.db.WithContext(ctx).Exec(query, args...)
	observability.EndSpan(span, res.Error)
	if res.Error != nil {
		r.logError(ctx, op, res.Error)
		return 0, r.translate(res.Error)
	}
	return res.RowsAffected, nil
}

// translate maps store errors onto AppErrors: unique violations are client
// errors, foreign key violations mean a referenced row is missing.
func (r *BaseRepository[T]) translate(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &models.AppError{Code: models.CodeValidation, Message: r.entity + " already exists", Err: err}
		case pgForeignKeyViolation:
			return &models.AppError{Code: models.CodeNotFound, Message: "referenced entity not found", Err: err}
		}
	}

	// sqlite reports constraint failures only through the message text.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &models.AppError{Code: models.CodeValidation, Message: r.entity + " already exists", Err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &models.AppError{Code: models.CodeNotFound, Message: "referenced entity not found", Err: err}
	}

	return models.NewInternalError(err)
}

func (r *BaseRepository[T]) logError(ctx context.Context, op string, err error) {
	middleware.Logger.ErrorContext(ctx, "repository error",
		slog.String("entity", r.entity),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return "?"
	}
	return args[0]
}
