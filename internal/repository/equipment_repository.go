package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/court-reservation/internal/model"
)

// EquipmentRepo provides read access to the equipment catalog.
// Pricing consumes the unit price; the stock column is informational
// and is never decremented by a reservation.
type EquipmentRepo struct {
    db *sql.DB
}

// NewEquipmentRepo returns a new EquipmentRepo bound to the given database.
func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{db: db} }

const equipmentColumns = `id, name, unit_price, stock, status, created_at, updated_at`

// GetByID returns the equipment item with the given id.
// ErrEquipmentNotFound is returned when no such item exists.
func (r *EquipmentRepo) GetByID(ctx context.Context, id uint64) (*model.Equipment, error) {
    const q = `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = ?`
    var e model.Equipment
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &e.ID, &e.Name, &e.UnitPrice, &e.Stock, &e.Status, &e.CreatedAt, &e.UpdatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrEquipmentNotFound
    }
    if err != nil {
        return nil, err
    }
    return &e, nil
}

// GetByIDs returns the equipment rows for the given ids keyed by id.
// Missing ids are simply absent from the map; callers decide whether
// that is an error.
func (r *EquipmentRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Equipment, error) {
    out := make(map[uint64]model.Equipment, len(ids))
    if len(ids) == 0 {
        return out, nil
    }
    placeholders := make([]string, len(ids))
    args := make([]interface{}, len(ids))
    for i, id := range ids {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id IN (` + strings.Join(placeholders, ",") + `)`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var e model.Equipment
        if err := rows.Scan(&e.ID, &e.Name, &e.UnitPrice, &e.Stock, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
            return nil, err
        }
        out[e.ID] = e
    }
    return out, rows.Err()
}

// List returns the full equipment catalog ordered by name.
func (r *EquipmentRepo) List(ctx context.Context) ([]model.Equipment, error) {
    const q = `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    items := make([]model.Equipment, 0)
    for rows.Next() {
        var e model.Equipment
        if err := rows.Scan(&e.ID, &e.Name, &e.UnitPrice, &e.Stock, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
            return nil, err
        }
        items = append(items, e)
    }
    return items, rows.Err()
}
