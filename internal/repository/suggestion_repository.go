package repository

import (
    "context"
    "database/sql"
    "sync"
    "time"

    "github.com/iliyamo/court-reservation/internal/model"
)

// SuggestionStore abstracts persistence of customer feedback. The
// feature is peripheral and tolerates data loss, so the handler keeps
// a primary (MySQL) store and an in-memory fallback behind the same
// interface instead of hiding the fallback in error-recovery code.
type SuggestionStore interface {
    Create(ctx context.Context, s *model.Suggestion) error
    List(ctx context.Context) ([]model.Suggestion, error)
}

// SuggestionRepo is the MySQL-backed SuggestionStore.
type SuggestionRepo struct {
    db *sql.DB
}

// NewSuggestionRepo returns a new SuggestionRepo bound to the given database.
func NewSuggestionRepo(db *sql.DB) *SuggestionRepo { return &SuggestionRepo{db: db} }

// Create inserts a suggestion row and populates its id and timestamp.
func (r *SuggestionRepo) Create(ctx context.Context, s *model.Suggestion) error {
    const q = `INSERT INTO suggestions (user_id, message) VALUES (?, ?)`
    result, err := r.db.ExecContext(ctx, q, s.UserID, s.Message)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at FROM suggestions WHERE id = ?`, s.ID).Scan(&s.CreatedAt)
}

// List returns all suggestions, newest first.
func (r *SuggestionRepo) List(ctx context.Context) ([]model.Suggestion, error) {
    const q = `SELECT id, user_id, message, created_at FROM suggestions ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Suggestion, 0)
    for rows.Next() {
        var s model.Suggestion
        if err := rows.Scan(&s.ID, &s.UserID, &s.Message, &s.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// MemorySuggestionStore is the process-memory fallback. Entries are
// lost on restart, which is acceptable for this feature only.
type MemorySuggestionStore struct {
    mu     sync.Mutex
    nextID uint64
    items  []model.Suggestion
}

// NewMemorySuggestionStore returns an empty in-memory store.
func NewMemorySuggestionStore() *MemorySuggestionStore {
    return &MemorySuggestionStore{nextID: 1}
}

// Create appends the suggestion to the in-memory list.
func (m *MemorySuggestionStore) Create(_ context.Context, s *model.Suggestion) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    s.ID = m.nextID
    s.CreatedAt = time.Now().UTC()
    m.nextID++
    m.items = append(m.items, *s)
    return nil
}

// List returns the stored suggestions, newest first.
func (m *MemorySuggestionStore) List(_ context.Context) ([]model.Suggestion, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make([]model.Suggestion, len(m.items))
    for i, s := range m.items {
        out[len(m.items)-1-i] = s
    }
    return out, nil
}
