package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
)

// PaymentRepo persists payment orders issued before the hosted
// checkout widget opens.  An order is the durable server-side record
// that lets the verification endpoint tie a widget callback back to a
// booking without trusting any client-supplied amount.
type PaymentRepo struct {
    db *sql.DB
}

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func scanPaymentOrder(row interface{ Scan(...interface{}) error }) (model.PaymentOrder, error) {
    var p model.PaymentOrder
    var status string
    err := row.Scan(&p.ID, &p.BookingID, &p.OrderRef, &p.AmountCents, &p.Currency,
        &status, &p.CreatedAt, &p.UpdatedAt)
    if err != nil {
        return model.PaymentOrder{}, err
    }
    p.Status = model.PaymentOrderStatus(status)
    return p, nil
}

// Create inserts a payment order and queries it back to populate
// generated fields.
func (r *PaymentRepo) Create(ctx context.Context, p *model.PaymentOrder) error {
    const q = `INSERT INTO payment_orders (booking_id, order_ref, amount_cents, currency, status)
               VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, p.BookingID, p.OrderRef, p.AmountCents, p.Currency, string(p.Status))
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    const sel = `SELECT id, booking_id, order_ref, amount_cents, currency, status, created_at, updated_at
                 FROM payment_orders WHERE id = ?`
    got, err := scanPaymentOrder(r.db.QueryRowContext(ctx, sel, p.ID))
    if err != nil {
        return err
    }
    *p = got
    return nil
}

// GetByRefTx loads a payment order by its opaque reference under
// FOR UPDATE so that concurrent verify calls for the same order
// serialize.  sql.ErrNoRows is returned when no order exists.
func (r *PaymentRepo) GetByRefTx(ctx context.Context, tx *sql.Tx, orderRef string) (model.PaymentOrder, error) {
    const q = `SELECT id, booking_id, order_ref, amount_cents, currency, status, created_at, updated_at
               FROM payment_orders WHERE order_ref = ? FOR UPDATE`
    return scanPaymentOrder(tx.QueryRowContext(ctx, q, orderRef))
}

// MarkStatusTx overwrites the order status within the transaction.
func (r *PaymentRepo) MarkStatusTx(ctx context.Context, tx *sql.Tx, orderID uint64, status model.PaymentOrderStatus) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE payment_orders SET status = ?, updated_at = NOW() WHERE id = ?`,
        string(status), orderID)
    return err
}
