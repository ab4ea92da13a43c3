package reconcile

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// CommitFunc sends the mutation to the source of truth. A nil appointment on success
// keeps the optimistic value.
type CommitFunc func(ctx context.Context) (*domain.Appointment, error)

// Listener receives the collection after every optimistic change, confirmation and rollback
type Listener func(snapshot []*domain.Appointment)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Policy decides what happens to a mutation while another one on the same id is in flight
type Policy int

const (
	// QueuePolicy waits for the in-flight mutation to settle
	QueuePolicy Policy = iota
	// RejectPolicy fails fast with domain.ErrConflict
	RejectPolicy
)

// ParsePolicy maps "queue" and "reject" to a Policy
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "queue":
		return QueuePolicy, true
	case "reject":
		return RejectPolicy, true
	default:
		return QueuePolicy, false
	}
}

// DefaultCommitTimeout bounds a commit when no timeout is configured
const DefaultCommitTimeout = 10 * time.Second

// Option configures a Store
type Option func(*Store)

// WithPolicy sets the same-id policy
func WithPolicy(p Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithCommitTimeout sets the commit deadline; zero or negative disables it
func WithCommitTimeout(d time.Duration) Option {
	return func(s *Store) { s.commitTimeout = d }
}

// WithListener registers the change listener
func WithListener(l Listener) Option {
	return func(s *Store) { s.listener = l }
}

// WithLogger sets the logger
func WithLogger(l Logger) Option {
	return func(s *Store) { s.logger = l }
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
