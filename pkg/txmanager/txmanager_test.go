package txmanager_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonConsole/pkg/txmanager"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs  []*fakeTx
	opts []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	m := txmanager.NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := txmanager.NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := txmanager.NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoReadOnly(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	m := txmanager.NewTransactionManager(db)
	calls := 0

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return fmt.Errorf("reschedule: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, db.opts, 2)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
	assert.True(t, db.txs[1].committed)
}

func TestDoSerializable_GivesUp(t *testing.T) {
	db := &fakeBeginner{}
	m := txmanager.NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return &pq.Error{Code: "40001"}
	})

	assert.True(t, txmanager.IsSerializationFailure(err))
	assert.Len(t, db.txs, txmanager.DefaultMaxRetries)
}
