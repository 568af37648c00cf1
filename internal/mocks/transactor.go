package mocks

import (
	"context"

	"github.com/phrazzld/event-calendar-api/internal/store"
)

// PassThroughTransactor runs fn directly with a nil transaction. It pairs
// with the in-memory stores, whose WithTx ignores the transaction.
type PassThroughTransactor struct{}

var _ store.Transactor = PassThroughTransactor{}

// WithinTx implements store.Transactor.
func (PassThroughTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}
