package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// withTx stores a transaction in the context so repository calls made inside
// repository.TxManager.WithinTx join it.
func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

// ext resolves the execer for a call: the context transaction when inside a
// unit of work, the pooled connection otherwise.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
