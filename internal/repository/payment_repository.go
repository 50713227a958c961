package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/court-reservation/internal/model"
)

// PaymentRepo persists payment records. A reservation owns zero or
// more payments; retried checkouts append new rows rather than
// mutating old ones.
type PaymentRepo struct {
    db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a payment within the scope of an existing
// transaction and reads the row back to populate timestamps. The
// caller must commit or roll back.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
    const q = `INSERT INTO payments
               (reservation_id, amount, method, transaction_id, reference_no, status, notes)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        p.ReservationID, p.Amount, p.Method, p.TransactionID, p.ReferenceNo, p.Status, p.Notes,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    const sel = `SELECT id, reservation_id, amount, method, transaction_id, reference_no, status, notes, created_at, updated_at
                 FROM payments WHERE id = ?`
    var notes sql.NullString
    err = tx.QueryRowContext(ctx, sel, p.ID).Scan(
        &p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.TransactionID,
        &p.ReferenceNo, &p.Status, &notes, &p.CreatedAt, &p.UpdatedAt,
    )
    if err != nil {
        return err
    }
    if notes.Valid {
        n := notes.String
        p.Notes = &n
    }
    return nil
}

// ClaimPaymentRef records that reconciliation of the given external
// payment reference has started. The unique key on
// processed_payments.payment_ref rejects a second insert, so when the
// same payment.paid event is delivered twice concurrently exactly one
// caller wins the claim and the other sees false. The claim commits
// on its own before any reservation row is written.
func (r *PaymentRepo) ClaimPaymentRef(ctx context.Context, paymentRef string) (bool, error) {
    const q = `INSERT INTO processed_payments (payment_ref) VALUES (?)`
    _, err := r.db.ExecContext(ctx, q, paymentRef)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return false, nil
        }
        return false, err
    }
    return true, nil
}

// ReleasePaymentRef removes a claim so a later delivery of the same
// event can retry. Used when reconciliation created no reservations
// at all; a partially reconciled payment keeps its claim.
func (r *PaymentRepo) ReleasePaymentRef(ctx context.Context, paymentRef string) error {
    const q = `DELETE FROM processed_payments WHERE payment_ref = ?`
    _, err := r.db.ExecContext(ctx, q, paymentRef)
    return err
}

// ListByReservation returns all payments for one reservation ordered
// by creation time.
func (r *PaymentRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
    const q = `SELECT id, reservation_id, amount, method, transaction_id, reference_no, status, notes, created_at, updated_at
               FROM payments WHERE reservation_id = ? ORDER BY created_at`
    rows, err := r.db.QueryContext(ctx, q, reservationID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Payment, 0)
    for rows.Next() {
        var p model.Payment
        var notes sql.NullString
        if err := rows.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.TransactionID,
            &p.ReferenceNo, &p.Status, &notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        if notes.Valid {
            n := notes.String
            p.Notes = &n
        }
        out = append(out, p)
    }
    return out, rows.Err()
}
