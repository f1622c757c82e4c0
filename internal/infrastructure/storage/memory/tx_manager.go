package memory

import "context"

// TxManager satisfies tx.Manager for the in-memory store. There is no
// transaction to manage, so fn runs directly.
type TxManager struct{}

// NewTxManager creates a no-op transaction manager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// RunInTransaction executes fn without transactional guarantees.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ReadOnly executes fn without transactional guarantees.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
