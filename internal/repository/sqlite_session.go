package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

const dateLayout = "2006-01-02"

// SQLiteSessionStore implements SessionStore using a SQLite database.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore creates a new SQLiteSessionStore.
func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

const sessionColumns = `id, participant_id, participant_name, session_date,
	start_time, end_time, activities, lifecycle_status, assignment_status, created_at`

func (r *SQLiteSessionStore) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO booking_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ParticipantID,
		s.ParticipantName,
		s.Date.Format(dateLayout),
		s.StartTime,
		s.EndTime,
		joinActivities(s.Activities),
		string(s.LifecycleStatus),
		string(s.AssignmentStatus),
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting booking session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionStore) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM booking_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM booking_sessions
		WHERE session_date >= ? AND session_date <= ?
		ORDER BY session_date, start_time, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing sessions by date range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionStore) ListByParticipant(ctx context.Context, participantID string) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM booking_sessions
		WHERE participant_id = ?
		ORDER BY session_date, start_time, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by participant: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionStore) SetLifecycle(ctx context.Context, id string, status domain.LifecycleStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE booking_sessions SET lifecycle_status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating lifecycle status: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteSessionStore) SetAssignment(ctx context.Context, id string, status domain.AssignmentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE booking_sessions SET assignment_status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating assignment status: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM booking_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting booking session: %w", err)
	}
	return requireRowAffected(res)
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionStore) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var dateStr, activitiesStr, lifecycleStr, assignmentStr, createdAtStr string

	err := row.Scan(
		&s.ID, &s.ParticipantID, &s.ParticipantName, &dateStr,
		&s.StartTime, &s.EndTime, &activitiesStr, &lifecycleStr, &assignmentStr, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("booking session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning booking session: %w", err)
	}
	return r.populateSession(&s, dateStr, activitiesStr, lifecycleStr, assignmentStr, createdAtStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionStore) scanSessions(rows *sql.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		var dateStr, activitiesStr, lifecycleStr, assignmentStr, createdAtStr string

		err := rows.Scan(
			&s.ID, &s.ParticipantID, &s.ParticipantName, &dateStr,
			&s.StartTime, &s.EndTime, &activitiesStr, &lifecycleStr, &assignmentStr, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking session: %w", err)
		}
		populated, err := r.populateSession(&s, dateStr, activitiesStr, lifecycleStr, assignmentStr, createdAtStr)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionStore) populateSession(s *domain.Session, dateStr, activitiesStr, lifecycleStr, assignmentStr, createdAtStr string) (*domain.Session, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session_date: %w", err)
	}
	s.Date = date
	s.Activities = splitActivities(activitiesStr)
	s.LifecycleStatus = domain.LifecycleStatus(lifecycleStr)
	s.AssignmentStatus = domain.AssignmentStatus(assignmentStr)

	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.CreatedAt = createdAt
	return s, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("booking session: %w", ErrNotFound)
	}
	return nil
}

// Activities are stored as a single comma-separated column; none of the
// activity names contain commas.
func joinActivities(activities []string) string {
	return strings.Join(activities, ",")
}

func splitActivities(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
