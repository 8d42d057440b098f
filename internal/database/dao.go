package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/protomem/todoit/internal/ctxstore"
	"github.com/protomem/todoit/internal/model"
)

func queryLogger(ctx context.Context, logger *slog.Logger, query string) *slog.Logger {
	logger = logger.With("query", query)
	if tid, ok := ctxstore.From[string](ctx, ctxstore.TraceID); ok {
		logger = logger.With(ctxstore.TraceID.String(), tid)
	}
	return logger
}

// insertReturningID runs an INSERT and reads back the generated primary key.
// A row without a readable key is reported as model.ErrNoGeneratedKey.
func insertReturningID(
	ctx context.Context, conn *sqlx.Conn, dialect Dialect,
	query string, args []any,
) (model.ID, error) {
	if dialect.Returning {
		var id model.ID
		if err := conn.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			if IsNoRows(err) {
				return 0, model.ErrNoGeneratedKey
			}
			return 0, err
		}
		if id <= 0 {
			return 0, model.ErrNoGeneratedKey
		}
		return id, nil
	}

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrNoGeneratedKey, err)
	}
	if id <= 0 {
		return 0, model.ErrNoGeneratedKey
	}

	return model.ID(id), nil
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func closeConn(logger *slog.Logger, conn *sqlx.Conn) {
	if err := conn.Close(); err != nil {
		logger.Warn("failed to release connection", "error", err)
	}
}
