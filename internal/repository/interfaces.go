package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// SessionStore is the session-list provider the engine is wired to: it hands
// over a full window for a date range and the engine derives everything else
// locally.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	ListByParticipant(ctx context.Context, participantID string) ([]domain.Session, error)
	SetLifecycle(ctx context.Context, id string, status domain.LifecycleStatus) error
	SetAssignment(ctx context.Context, id string, status domain.AssignmentStatus) error
	Delete(ctx context.Context, id string) error
}

// AvailabilityStore provides the per-date availability marks consumed by the
// overlay.
type AvailabilityStore interface {
	Create(ctx context.Context, m *domain.AvailabilityMark) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.AvailabilityMark, error)
	SetKind(ctx context.Context, id string, kind domain.AvailabilityKind) error
	Delete(ctx context.Context, id string) error
}
