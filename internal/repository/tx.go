package repository

import "context"

// TxManager owns the transaction boundary for a request. The handler-facing
// service opens exactly one transaction per multi-write operation; nested
// repository calls join it through the context instead of committing on their
// own.
type TxManager interface {
	// WithinTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise. A call already inside a transaction joins
	// it rather than opening a second one.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
