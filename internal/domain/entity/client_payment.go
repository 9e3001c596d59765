package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientPayment representa un pago registrado sobre un cliente.
type ClientPayment struct {
	ID            string
	ClientID      string
	Amount        decimal.Decimal
	Date          time.Time
	Method        string
	TransactionID string
	CreatedAt     time.Time
}
