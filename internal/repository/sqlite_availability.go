package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

// SQLiteAvailabilityStore implements AvailabilityStore using SQLite.
type SQLiteAvailabilityStore struct {
	db *sql.DB
}

// NewSQLiteAvailabilityStore creates a new SQLiteAvailabilityStore.
func NewSQLiteAvailabilityStore(db *sql.DB) *SQLiteAvailabilityStore {
	return &SQLiteAvailabilityStore{db: db}
}

func (r *SQLiteAvailabilityStore) Create(ctx context.Context, m *domain.AvailabilityMark) error {
	query := `INSERT INTO availability_marks (id, mark_date, kind, note, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Date.Format(dateLayout),
		string(m.Kind),
		m.Note,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting availability mark: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.AvailabilityMark, error) {
	query := `SELECT id, mark_date, kind, note, created_at FROM availability_marks
		WHERE mark_date >= ? AND mark_date <= ?
		ORDER BY mark_date, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing availability marks: %w", err)
	}
	defer rows.Close()

	var marks []domain.AvailabilityMark
	for rows.Next() {
		var m domain.AvailabilityMark
		var dateStr, kindStr, createdAtStr string
		if err := rows.Scan(&m.ID, &dateStr, &kindStr, &m.Note, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning availability mark: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing mark_date: %w", err)
		}
		createdAt, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		m.Date = date
		m.Kind = domain.AvailabilityKind(kindStr)
		m.CreatedAt = createdAt
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability marks: %w", err)
	}
	return marks, nil
}

func (r *SQLiteAvailabilityStore) SetKind(ctx context.Context, id string, kind domain.AvailabilityKind) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE availability_marks SET kind = ? WHERE id = ?`, string(kind), id)
	if err != nil {
		return fmt.Errorf("updating availability kind: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("availability mark: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteAvailabilityStore) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availability_marks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting availability mark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("availability mark: %w", ErrNotFound)
	}
	return nil
}
