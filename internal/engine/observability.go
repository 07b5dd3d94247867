package engine

import (
	"io"
	"log/slog"
	"time"
)

// RecomputeEvent captures lightweight telemetry for one derivation pass.
type RecomputeEvent struct {
	Now        time.Time
	Total      int
	Classified int
	Skipped    int
	Duration   time.Duration
}

// Observer receives recompute events and per-record warnings.
type Observer interface {
	ObserveRecompute(event RecomputeEvent)
	ObserveSkipped(sessionID string, err error)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveRecompute(RecomputeEvent) {}
func (NoopObserver) ObserveSkipped(string, error)    {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes engine events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveRecompute(event RecomputeEvent) {
	o.logger.Info("timeline_recompute",
		"now", event.Now.Format(time.RFC3339),
		"total", event.Total,
		"classified", event.Classified,
		"skipped", event.Skipped,
		"duration_ms", event.Duration.Milliseconds(),
	)
}

func (o *logObserver) ObserveSkipped(sessionID string, err error) {
	o.logger.Warn("session_excluded", "session_id", sessionID, "error", err.Error())
}

func observerOrNoop(obs Observer) Observer {
	if obs == nil {
		return NoopObserver{}
	}
	return obs
}
