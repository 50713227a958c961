package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/court-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and the
// availability/conflict queries built on top of them. A reservation
// claims one court for a half-open [start,end) window on a date; the
// no-double-booking invariant is enforced inside a transaction by
// probing for confirmed overlaps with a locking read before insert,
// backed by the unique key on (court_id, date, start_time, status)
// for the fixed hourly grid.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, user_id, court_id, DATE_FORMAT(date, '%Y-%m-%d'),
       TIME_FORMAT(start_time, '%H:%i:%s'), TIME_FORMAT(end_time, '%H:%i:%s'),
       status, total_amount, reference_no, payment_ref, notes, created_at, updated_at`

func scanReservation(scan func(dest ...interface{}) error) (*model.Reservation, error) {
    var res model.Reservation
    var paymentRef, notes sql.NullString
    err := scan(
        &res.ID, &res.UserID, &res.CourtID, &res.Date,
        &res.StartTime, &res.EndTime,
        &res.Status, &res.TotalAmount, &res.ReferenceNo, &paymentRef, &notes,
        &res.CreatedAt, &res.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if paymentRef.Valid {
        pr := paymentRef.String
        res.PaymentRef = &pr
    }
    if notes.Valid {
        n := notes.String
        res.Notes = &n
    }
    return &res, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and reads the full row back so generated timestamps are
// populated. The caller must commit or roll back the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations
               (user_id, court_id, date, start_time, end_time, status, total_amount, reference_no, payment_ref, notes)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.UserID, res.CourtID, res.Date, res.StartTime, res.EndTime,
        res.Status, res.TotalAmount, res.ReferenceNo, res.PaymentRef, res.Notes,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    sel := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    back, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID).Scan)
    if err != nil {
        return err
    }
    *res = *back
    return nil
}

// HasConflictTx reports whether a CONFIRMED reservation on the same
// court and date overlaps the half-open window [start,end). The probe
// runs with FOR UPDATE so two concurrent bookings for the same slot
// serialize on the existing rows instead of racing past each other.
// A non-zero excludeID leaves that row out of the probe, so a
// reservation being rescheduled never conflicts with itself.
func (r *ReservationRepo) HasConflictTx(ctx context.Context, tx *sql.Tx, courtID uint64, date, start, end string, excludeID uint64) (bool, error) {
    const q = `SELECT id FROM reservations
               WHERE court_id = ? AND date = ? AND status = 'CONFIRMED'
                 AND start_time < ? AND end_time > ?
                 AND id <> ?
               LIMIT 1 FOR UPDATE`
    var id uint64
    err := tx.QueryRowContext(ctx, q, courtID, date, end, start, excludeID).Scan(&id)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// ListConfirmedByCourtDate returns all CONFIRMED reservations for the
// given court and date, ordered by start time. The availability
// checker folds these into the fixed hourly bands. The result is
// consistent only as of query time; booking re-checks conflicts
// transactionally.
func (r *ReservationRepo) ListConfirmedByCourtDate(ctx context.Context, courtID uint64, date string) ([]model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations
          WHERE court_id = ? AND date = ? AND status = 'CONFIRMED'
          ORDER BY start_time`
    rows, err := r.db.QueryContext(ctx, q, courtID, date)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        res, err := scanReservation(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *res)
    }
    return out, rows.Err()
}

// GetByID returns the bare reservation row. ErrReservationNotFound is
// returned when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    res, err := scanReservation(r.db.QueryRowContext(ctx, q, id).Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrReservationNotFound
    }
    return res, err
}

// ReservationDetail joins a reservation with its court, owner and
// payment records for display to customers.
type ReservationDetail struct {
    model.Reservation
    CourtName string          `json:"court_name"`
    UserEmail string          `json:"user_email"`
    Payments  []model.Payment `json:"payments"`
}

// GetDetail returns a single reservation with court, owner and
// payments expanded. ErrReservationNotFound is returned when the id
// does not exist.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (*ReservationDetail, error) {
    q := `SELECT r.id, r.user_id, r.court_id, DATE_FORMAT(r.date, '%Y-%m-%d'),
                 TIME_FORMAT(r.start_time, '%H:%i:%s'), TIME_FORMAT(r.end_time, '%H:%i:%s'),
                 r.status, r.total_amount, r.reference_no, r.payment_ref, r.notes,
                 r.created_at, r.updated_at,
                 c.name, u.email
          FROM reservations r
          JOIN courts c ON c.id = r.court_id
          JOIN users u ON u.id = r.user_id
          WHERE r.id = ?`
    var det ReservationDetail
    var paymentRef, notes sql.NullString
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &det.ID, &det.UserID, &det.CourtID, &det.Date,
        &det.StartTime, &det.EndTime,
        &det.Status, &det.TotalAmount, &det.ReferenceNo, &paymentRef, &notes,
        &det.CreatedAt, &det.UpdatedAt,
        &det.CourtName, &det.UserEmail,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrReservationNotFound
    }
    if err != nil {
        return nil, err
    }
    if paymentRef.Valid {
        pr := paymentRef.String
        det.PaymentRef = &pr
    }
    if notes.Valid {
        n := notes.String
        det.Notes = &n
    }
    det.Payments = []model.Payment{}
    payments, err := r.paymentsFor(ctx, []uint64{det.ID})
    if err != nil {
        return nil, err
    }
    det.Payments = payments[det.ID]
    if det.Payments == nil {
        det.Payments = []model.Payment{}
    }
    return &det, nil
}

// ListByUser returns all reservations for the given user with court
// and payments expanded, ordered by creation time descending (newest
// first). When no reservations exist, an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    q := `SELECT r.id, r.user_id, r.court_id, DATE_FORMAT(r.date, '%Y-%m-%d'),
                 TIME_FORMAT(r.start_time, '%H:%i:%s'), TIME_FORMAT(r.end_time, '%H:%i:%s'),
                 r.status, r.total_amount, r.reference_no, r.payment_ref, r.notes,
                 r.created_at, r.updated_at,
                 c.name, u.email
          FROM reservations r
          JOIN courts c ON c.id = r.court_id
          JOIN users u ON u.id = r.user_id
          WHERE r.user_id = ?
          ORDER BY r.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]ReservationDetail, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var det ReservationDetail
        var paymentRef, notes sql.NullString
        if err := rows.Scan(
            &det.ID, &det.UserID, &det.CourtID, &det.Date,
            &det.StartTime, &det.EndTime,
            &det.Status, &det.TotalAmount, &det.ReferenceNo, &paymentRef, &notes,
            &det.CreatedAt, &det.UpdatedAt,
            &det.CourtName, &det.UserEmail,
        ); err != nil {
            return nil, err
        }
        if paymentRef.Valid {
            pr := paymentRef.String
            det.PaymentRef = &pr
        }
        if notes.Valid {
            n := notes.String
            det.Notes = &n
        }
        det.Payments = []model.Payment{}
        index[det.ID] = len(details)
        details = append(details, det)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return details, nil
    }
    ids := make([]uint64, 0, len(details))
    for _, d := range details {
        ids = append(ids, d.ID)
    }
    payments, err := r.paymentsFor(ctx, ids)
    if err != nil {
        return nil, err
    }
    for rid, ps := range payments {
        if idx, ok := index[rid]; ok {
            details[idx].Payments = ps
        }
    }
    return details, nil
}

// paymentsFor loads all payments for the given reservation ids in a
// single query, grouped by reservation id.
func (r *ReservationRepo) paymentsFor(ctx context.Context, ids []uint64) (map[uint64][]model.Payment, error) {
    out := make(map[uint64][]model.Payment, len(ids))
    if len(ids) == 0 {
        return out, nil
    }
    placeholders := make([]string, len(ids))
    args := make([]interface{}, len(ids))
    for i, id := range ids {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `SELECT id, reservation_id, amount, method, transaction_id, reference_no, status, notes, created_at, updated_at
          FROM payments
          WHERE reservation_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY reservation_id, created_at`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
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
        out[p.ReservationID] = append(out[p.ReservationID], p)
    }
    return out, rows.Err()
}

// ReservationPatch carries the optional fields of a partial update.
// Nil fields are left untouched.
type ReservationPatch struct {
    Date        *string
    StartTime   *string
    EndTime     *string
    Status      *string
    TotalAmount *float64
    Notes       *string
}

// Update applies a partial update to the reservation with the given
// id. Status transition legality is validated by the caller against
// the current row before calling Update.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, patch ReservationPatch) error {
    return applyPatch(ctx, r.db, id, patch)
}

// UpdateTx applies a partial update inside an existing transaction.
// Reschedules use it so the conflict probe and the write commit
// together; releasing the probe's locks before the write would let a
// concurrent booking slip into the gap.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, id uint64, patch ReservationPatch) error {
    return applyPatch(ctx, tx, id, patch)
}

type execer interface {
    ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func applyPatch(ctx context.Context, db execer, id uint64, patch ReservationPatch) error {
    sets := make([]string, 0, 6)
    args := make([]interface{}, 0, 7)
    if patch.Date != nil {
        sets = append(sets, "date = ?")
        args = append(args, *patch.Date)
    }
    if patch.StartTime != nil {
        sets = append(sets, "start_time = ?")
        args = append(args, *patch.StartTime)
    }
    if patch.EndTime != nil {
        sets = append(sets, "end_time = ?")
        args = append(args, *patch.EndTime)
    }
    if patch.Status != nil {
        sets = append(sets, "status = ?")
        args = append(args, *patch.Status)
    }
    if patch.TotalAmount != nil {
        sets = append(sets, "total_amount = ?")
        args = append(args, *patch.TotalAmount)
    }
    if patch.Notes != nil {
        sets = append(sets, "notes = ?")
        args = append(args, *patch.Notes)
    }
    if len(sets) == 0 {
        return nil
    }
    q := `UPDATE reservations SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
    args = append(args, id)
    // RowsAffected is not checked: MySQL reports zero rows both for
    // missing ids and for no-op updates, and existence is verified by
    // the caller before patching.
    _, err := db.ExecContext(ctx, q, args...)
    return err
}

// Delete removes the reservation row. Payments cascade via the
// foreign key. ErrReservationNotFound is returned when nothing was
// deleted.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
    const q = `DELETE FROM reservations WHERE id = ?`
    result, err := r.db.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrReservationNotFound
    }
    return nil
}
