package postgres

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager manages database transactions using the context pattern.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx executes fn within a database transaction (Read Committed).
//
// If ctx already carries a transaction, fn joins it and commit/rollback is
// left to the outer call. Otherwise a new transaction is started: it is
// committed when fn succeeds, rolled back when fn returns an error, and
// rolled back before re-panicking when fn panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	txCtx := withTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Lock takes a transaction-scoped advisory lock on namespace:key. It must be
// called inside RunInTx; the lock is released on commit or rollback.
func (m *TxManager) Lock(ctx context.Context, namespace, key string) error {
	tx, ok := txFromCtx(ctx)
	if !ok {
		return fmt.Errorf("advisory lock %s: no transaction in context", namespace)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, AdvisoryKey(namespace, key)); err != nil {
		return fmt.Errorf("advisory lock %s: %w", namespace, err)
	}
	return nil
}

// AdvisoryKey hashes namespace:key into the int64 keyspace of
// pg_advisory_xact_lock.
func AdvisoryKey(namespace, key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(namespace))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}
