package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/reconcile"
	"github.com/m04kA/SMC-SalonConsole/pkg/ptr"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

func collection() []*domain.Appointment {
	return []*domain.Appointment{
		{ID: 1, SlotDate: "19_10_2026", SlotTime: "9:00 AM", Amount: 40},
		{ID: 2, SlotDate: "19_10_2026", SlotTime: "9:30 AM", Amount: 55},
		{ID: 3, SlotDate: "20_10_2026", SlotTime: "11:00 AM", Amount: 70, IsCompleted: true},
	}
}

func cancelPatch() domain.AppointmentPatch {
	return domain.AppointmentPatch{Cancelled: ptr.Ptr(true)}
}

func TestApplyOptimistic_StructuralSharingAndRollback(t *testing.T) {
	patches := []domain.AppointmentPatch{
		cancelPatch(),
		{IsCompleted: ptr.Ptr(false)},
		{SlotDate: ptr.Ptr(types.DateKey("22_10_2026")), SlotTime: ptr.Ptr(types.ClockTime("3:00 PM")), HasRescheduled: ptr.Ptr(true)},
		{},
	}

	for i, patch := range patches {
		t.Run(fmt.Sprintf("patch-%d", i), func(t *testing.T) {
			before := collection()
			pristine := collection()

			next, rollback, err := reconcile.ApplyOptimistic(before, 2, patch)
			require.NoError(t, err)

			assert.Same(t, before[0], next[0])
			assert.Same(t, before[2], next[2])
			assert.NotSame(t, before[1], next[1])
			assert.Equal(t, pristine, before, "input collection must not change")

			restored := rollback(next)
			assert.Equal(t, pristine, restored)
			assert.Same(t, before[1], restored[1])
		})
	}
}

func TestApplyOptimistic_UnknownID(t *testing.T) {
	_, _, err := reconcile.ApplyOptimistic(collection(), 99, cancelPatch())
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestStore_RejectedCommitRollsBack(t *testing.T) {
	initial := collection()
	var seen [][]*domain.Appointment
	store := reconcile.NewStore(initial, reconcile.WithListener(func(s []*domain.Appointment) {
		seen = append(seen, s)
	}))

	_, err := store.Mutate(context.Background(), 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
		if current, ok := store.Get(2); assert.True(t, ok) {
			assert.True(t, current.Cancelled, "optimistic value is visible while committing")
		}
		return nil, fmt.Errorf("%w: slot is locked", domain.ErrRemoteRejected)
	})

	assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.Equal(t, collection(), store.Snapshot())
	require.Len(t, seen, 2)
	assert.True(t, seen[0][1].Cancelled)
	assert.False(t, seen[1][1].Cancelled)
}

func TestStore_ConfirmReplacesOptimisticValue(t *testing.T) {
	store := reconcile.NewStore(collection())

	result, err := store.Mutate(context.Background(), 1, domain.AppointmentPatch{IsCompleted: ptr.Ptr(true)},
		func(ctx context.Context) (*domain.Appointment, error) {
			return &domain.Appointment{ID: 1, SlotDate: "19_10_2026", SlotTime: "9:00 AM", Amount: 45, IsCompleted: true, Payment: true}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 45.0, result.Amount)

	current, _ := store.Get(1)
	assert.True(t, current.Payment)
	assert.Equal(t, 45.0, current.Amount)
}

func TestStore_NilConfirmationKeepsOptimisticValue(t *testing.T) {
	store := reconcile.NewStore(collection())

	result, err := store.Mutate(context.Background(), 1, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
		return nil, nil
	})

	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	current, _ := store.Get(1)
	assert.True(t, current.Cancelled)
}

func TestStore_CommitTimeout(t *testing.T) {
	store := reconcile.NewStore(collection(), reconcile.WithCommitTimeout(20*time.Millisecond))

	_, err := store.Mutate(context.Background(), 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	assert.ErrorIs(t, err, domain.ErrCommitTimeout)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.True(t, domain.IsRetryable(err))
	assert.Equal(t, collection(), store.Snapshot())
}

func TestStore_CommitIgnoringContextStillTimesOut(t *testing.T) {
	store := reconcile.NewStore(collection(), reconcile.WithCommitTimeout(20*time.Millisecond))
	release := make(chan struct{})
	defer close(release)

	_, err := store.Mutate(context.Background(), 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
		<-release
		return nil, nil
	})

	assert.ErrorIs(t, err, domain.ErrCommitTimeout)
	assert.Equal(t, collection(), store.Snapshot())
}

func TestStore_RejectPolicyFailsFast(t *testing.T) {
	store := reconcile.NewStore(collection(), reconcile.WithPolicy(reconcile.RejectPolicy))
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := store.Mutate(context.Background(), 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
			close(started)
			<-release
			return nil, nil
		})
		assert.NoError(t, err)
	}()

	<-started
	_, err := store.Mutate(context.Background(), 2, domain.AppointmentPatch{IsCompleted: ptr.Ptr(true)},
		func(ctx context.Context) (*domain.Appointment, error) {
			t.Error("conflicting commit must not run")
			return nil, nil
		})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// other ids are not affected
	_, err = store.Mutate(context.Background(), 1, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
		return nil, nil
	})
	assert.NoError(t, err)

	close(release)
	wg.Wait()

	current, _ := store.Get(2)
	assert.True(t, current.Cancelled)
	assert.False(t, current.IsCompleted)
}

func TestStore_QueuePolicyDoesNotClobberNewerValue(t *testing.T) {
	store := reconcile.NewStore(collection())
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := store.Mutate(context.Background(), 2, domain.AppointmentPatch{Payment: ptr.Ptr(true)},
			func(ctx context.Context) (*domain.Appointment, error) {
				close(started)
				<-release
				return nil, domain.ErrRemoteRejected
			})
		assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	}()

	<-started
	second := make(chan error, 1)
	go func() {
		_, err := store.Mutate(context.Background(), 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
			return nil, nil
		})
		second <- err
	}()

	select {
	case <-second:
		t.Fatal("second mutation must wait for the first to settle")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	wg.Wait()
	require.NoError(t, <-second)

	current, _ := store.Get(2)
	assert.True(t, current.Cancelled)
	assert.False(t, current.Payment, "rolled back first mutation")
}

func TestStore_QueuedMutationHonoursContext(t *testing.T) {
	store := reconcile.NewStore(collection())
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _ = store.Mutate(context.Background(), 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := store.Mutate(ctx, 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
		return nil, nil
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestStore_DisposeMakesLateCallbacksNoOps(t *testing.T) {
	notified := 0
	var mu sync.Mutex
	store := reconcile.NewStore(collection(), reconcile.WithListener(func([]*domain.Appointment) {
		mu.Lock()
		notified++
		mu.Unlock()
	}))
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := store.Mutate(context.Background(), 2, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
			close(started)
			<-release
			return nil, domain.ErrRemoteRejected
		})
		done <- err
	}()

	<-started
	snapshot := store.Snapshot()
	store.Dispose()
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrRemoteRejected)
	assert.Equal(t, snapshot, store.Snapshot(), "no rollback after dispose")
	mu.Lock()
	assert.Equal(t, 1, notified)
	mu.Unlock()

	_, err := store.Mutate(context.Background(), 1, cancelPatch(), func(ctx context.Context) (*domain.Appointment, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, domain.ErrDisposed)
	assert.ErrorIs(t, store.Replace(nil), domain.ErrDisposed)
	store.Dispose()
}

func TestParsePolicy(t *testing.T) {
	p, ok := reconcile.ParsePolicy("reject")
	assert.True(t, ok)
	assert.Equal(t, reconcile.RejectPolicy, p)

	p, ok = reconcile.ParsePolicy("")
	assert.True(t, ok)
	assert.Equal(t, reconcile.QueuePolicy, p)

	_, ok = reconcile.ParsePolicy("drop")
	assert.False(t, ok)
}
