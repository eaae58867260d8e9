package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner abstracts the transaction boundary. Every multi-step mutation in
// the services runs inside RunInTx so any error rolls the whole unit back —
// callers never observe partial writes. Unit tests substitute an in-memory
// implementation that serializes fn calls the way row locks do.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct{ db *gorm.DB }

// NewTxRunner wraps a live GORM connection.
func NewTxRunner(db *gorm.DB) TxRunner { return gormTxRunner{db: db} }

func (r gormTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
