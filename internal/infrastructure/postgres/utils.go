package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hatim85f/codex-crm/internal/domain"
)

// Querier abstrae pool y tx: cualquier repo puede atarse a ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isTransient verifica si un error es de conectividad/timeout contra la DB
// (clase 08 de PostgreSQL, deadline vencido o error de red).
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") // connection_exception
	}
	return false
}

// uuidOrNull traduce el string vacío de Go a SQL NULL para columnas uuid:
// pgx no puede codificar "" como uuid y abortaría el statement.
func uuidOrNull(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// wrapStoreErr traduce errores de pgx a los sentinelas de dominio:
// 23505 -> ErrDuplicate, conectividad -> ErrStoreUnavailable.
func wrapStoreErr(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isTransient(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
