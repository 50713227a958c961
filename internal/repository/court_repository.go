package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/court-reservation/internal/model"
)

// CourtRepo provides read access to the courts catalog. Courts are
// administrator-managed reference data; this service only reads them.
type CourtRepo struct {
    db *sql.DB
}

// NewCourtRepo returns a new CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

const courtColumns = `id, name, description, status, hourly_price, created_at, updated_at`

func scanCourt(row *sql.Row) (*model.Court, error) {
    var c model.Court
    var desc sql.NullString
    err := row.Scan(&c.ID, &c.Name, &desc, &c.Status, &c.HourlyPrice, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        return nil, err
    }
    if desc.Valid {
        d := desc.String
        c.Description = &d
    }
    return &c, nil
}

// GetByID returns the court with the given id. ErrCourtNotFound is
// returned when no such court exists.
func (r *CourtRepo) GetByID(ctx context.Context, id uint64) (*model.Court, error) {
    const q = `SELECT ` + courtColumns + ` FROM courts WHERE id = ?`
    c, err := scanCourt(r.db.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrCourtNotFound
    }
    return c, err
}

// GetByName returns the court whose name matches exactly, ignoring
// case. Webhook booking metadata carries court names rather than ids,
// so reconciliation resolves courts through this lookup.
func (r *CourtRepo) GetByName(ctx context.Context, name string) (*model.Court, error) {
    const q = `SELECT ` + courtColumns + ` FROM courts WHERE LOWER(name) = LOWER(?)`
    c, err := scanCourt(r.db.QueryRowContext(ctx, q, name))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrCourtNotFound
    }
    return c, err
}

// List returns all courts ordered by name for the public catalog.
func (r *CourtRepo) List(ctx context.Context) ([]model.Court, error) {
    const q = `SELECT ` + courtColumns + ` FROM courts ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    courts := make([]model.Court, 0)
    for rows.Next() {
        var c model.Court
        var desc sql.NullString
        if err := rows.Scan(&c.ID, &c.Name, &desc, &c.Status, &c.HourlyPrice, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, err
        }
        if desc.Valid {
            d := desc.String
            c.Description = &d
        }
        courts = append(courts, c)
    }
    return courts, rows.Err()
}
