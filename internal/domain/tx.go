package domain

import "context"

// TxRunner executes fn so that every repository write inside it commits
// together or not at all. Implementations propagate the transaction through
// the context handed to fn.
type TxRunner interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
}
