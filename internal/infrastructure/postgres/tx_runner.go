package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hatim85f/codex-crm/internal/application/auth"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

var _ auth.RegistrationTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta funciones con repos atados a una transacción pgx.
// Rollback automático si fn devuelve error o hay pánico.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner sobre el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre la transacción, construye repos sobre ella y comitea si fn retorna nil.
func (t *TxRunner) Run(ctx context.Context, fn func(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return wrapStoreErr("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewOrganizationRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
