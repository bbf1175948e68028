// Package gormrepo implements the domain repository interfaces on gorm and
// postgres. All writes that must land together run through TxRunner; the
// transaction handle travels in the context so repositories join it
// transparently.
package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxRunner implements domain.TxRunner on a gorm transaction.
type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction bound to ctx, if any, else the base handle.
func dbFrom(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}
