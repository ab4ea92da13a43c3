package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// Store owns an appointment collection and changes it only through optimistic mutations.
// Mutations of the same id are serialised; different ids commit concurrently.
type Store struct {
	mu       sync.Mutex
	items    []*domain.Appointment
	inflight map[int64]chan struct{}
	disposed bool
	done     chan struct{}

	policy        Policy
	commitTimeout time.Duration
	listener      Listener
	logger        Logger
}

// NewStore creates a store over a copy of initial
func NewStore(initial []*domain.Appointment, opts ...Option) *Store {
	items := make([]*domain.Appointment, len(initial))
	copy(items, initial)

	s := &Store{
		items:         items,
		inflight:      make(map[int64]chan struct{}),
		done:          make(chan struct{}),
		policy:        QueuePolicy,
		commitTimeout: DefaultCommitTimeout,
		logger:        nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current collection. Callers must not modify the elements.
func (s *Store) Snapshot() []*domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Get returns the current value of one appointment
func (s *Store) Get(id int64) (*domain.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.items, id)
	if idx < 0 {
		return nil, false
	}
	return s.items[idx], true
}

// Replace swaps the whole collection after a refetch
func (s *Store) Replace(items []*domain.Appointment) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return domain.ErrDisposed
	}
	next := make([]*domain.Appointment, len(items))
	copy(next, items)
	s.items = next
	s.mu.Unlock()

	s.notify(next)
	return nil
}

// Mutate applies patch to the appointment immediately, awaits commit and then either
// replaces the optimistic value with the confirmed one or rolls it back.
// The rollback always happens before the commit error is returned.
func (s *Store) Mutate(ctx context.Context, id int64, patch domain.AppointmentPatch, commit CommitFunc) (*domain.Appointment, error) {
	release, err := s.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, domain.ErrDisposed
	}
	next, rollback, err := ApplyOptimistic(s.items, id, patch)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.items = next
	optimistic := next[indexOf(next, id)]
	s.mu.Unlock()
	s.notify(next)

	confirmed, commitErr := s.runCommit(ctx, commit)

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		s.logger.Info("Mutate: store disposed before appointment id=%d settled", id)
		if commitErr != nil {
			return nil, commitErr
		}
		return confirmed, nil
	}

	if commitErr != nil {
		s.items = rollback(s.items)
		snapshot := s.items
		s.mu.Unlock()
		s.notify(snapshot)
		s.logger.Warn("Mutate: rolled back appointment id=%d: %v", id, commitErr)
		return nil, commitErr
	}

	result := optimistic
	if confirmed != nil {
		result = confirmed
		s.items = replace(s.items, id, confirmed)
	}
	snapshot := s.items
	s.mu.Unlock()
	s.notify(snapshot)

	s.logger.Info("Mutate: appointment id=%d confirmed", id)
	return result, nil
}

// Dispose detaches the store: pending confirmations and rollbacks become no-ops,
// waiting and new mutations fail with domain.ErrDisposed.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	close(s.done)
}

// acquire takes the per-id slot according to the policy
func (s *Store) acquire(ctx context.Context, id int64) (func(), error) {
	for {
		s.mu.Lock()
		if s.disposed {
			s.mu.Unlock()
			return nil, domain.ErrDisposed
		}
		busy, ok := s.inflight[id]
		if !ok {
			slot := make(chan struct{})
			s.inflight[id] = slot
			s.mu.Unlock()

			return func() {
				s.mu.Lock()
				delete(s.inflight, id)
				s.mu.Unlock()
				close(slot)
			}, nil
		}
		s.mu.Unlock()

		if s.policy == RejectPolicy {
			return nil, fmt.Errorf("%w: appointment id=%d", domain.ErrConflict, id)
		}

		select {
		case <-busy:
		case <-s.done:
			return nil, domain.ErrDisposed
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

type commitResult struct {
	app *domain.Appointment
	err error
}

// runCommit bounds commit by the configured timeout
func (s *Store) runCommit(ctx context.Context, commit CommitFunc) (*domain.Appointment, error) {
	commitCtx := ctx
	if s.commitTimeout > 0 {
		var cancel context.CancelFunc
		commitCtx, cancel = context.WithTimeout(ctx, s.commitTimeout)
		defer cancel()
	}

	results := make(chan commitResult, 1)
	go func() {
		app, err := commit(commitCtx)
		results <- commitResult{app: app, err: err}
	}()

	select {
	case res := <-results:
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCommitTimeout, res.err)
		}
		return res.app, res.err
	case <-commitCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: after %s", domain.ErrCommitTimeout, s.commitTimeout)
	}
}

func (s *Store) notify(snapshot []*domain.Appointment) {
	if s.listener != nil {
		s.listener(snapshot)
	}
}
