package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records commit/rollback; the embedded nil pgx.Tx panics if any
// other method is reached.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTransaction_Commit(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return nil })
	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, b.tx.committed)
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnCommitFailure(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization failure")}}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return nil })
	require.Error(t, err)
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), b, func(pgx.Tx) error { panic("bad") })
	})
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_BeginFailure(t *testing.T) {
	b := &fakeBeginner{err: errors.New("pool exhausted")}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return nil })
	assert.ErrorContains(t, err, "pool exhausted")
}

func TestWithTransactionResult(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	n, err := WithTransactionResult(context.Background(), b, func(pgx.Tx) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	b = &fakeBeginner{tx: &fakeTx{}}
	n, err = WithTransactionResult(context.Background(), b, func(pgx.Tx) (int, error) { return 7, errors.New("x") })
	assert.Error(t, err)
	assert.Zero(t, n)
}
