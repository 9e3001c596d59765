package postgres

import (
	"context"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

var _ repository.ClientPaymentRepository = (*ClientPaymentRepo)(nil)

// ClientPaymentRepo implementación de ClientPaymentRepository.
// amount es NUMERIC y mapea a decimal vía el codec registrado en el pool.
type ClientPaymentRepo struct {
	q Querier
}

// NewClientPaymentRepository construye el adaptador.
func NewClientPaymentRepository(q Querier) *ClientPaymentRepo {
	return &ClientPaymentRepo{q: q}
}

// Create registra un pago.
func (r *ClientPaymentRepo) Create(ctx context.Context, p *entity.ClientPayment) error {
	query := `
		INSERT INTO client_payments (id, client_id, amount, date, method, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ClientID, p.Amount, p.Date, p.Method, p.TransactionID, p.CreatedAt,
	)
	if err != nil {
		return wrapStoreErr("insert payment", err)
	}
	return nil
}

// ListByClient lista los pagos de un cliente, más recientes primero.
func (r *ClientPaymentRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.ClientPayment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, client_id, amount, date, method, transaction_id, created_at
		 FROM client_payments WHERE client_id = $1 ORDER BY date DESC`, clientID,
	)
	if err != nil {
		return nil, wrapStoreErr("list payments", err)
	}
	defer rows.Close()
	var list []*entity.ClientPayment
	for rows.Next() {
		var p entity.ClientPayment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Amount, &p.Date, &p.Method, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, wrapStoreErr("scan payment", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
