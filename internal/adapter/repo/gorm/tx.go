package gormrepo

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func txFromCtx(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok && tx != nil
}

func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return base
}

// TxManager runs catalog writes and multi-table reads in one transaction.
// A ctx that already carries a transaction joins it.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, nil, fn)
}

// RunInReadTx gives fn a read-only repeatable-read snapshot so a concurrent
// Save cannot be observed half applied.
func (t TxManager) RunInReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (t TxManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}
	txFn := func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	}
	if opts == nil {
		return t.db.WithContext(ctx).Transaction(txFn)
	}
	return t.db.WithContext(ctx).Transaction(txFn, opts)
}
