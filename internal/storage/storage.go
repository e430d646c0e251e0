package storage

import (
	"context"

	"gteKit/internal/model"
)

// Storage is a sink for built transactions.
type Storage interface {
	PutTransactions(ctx context.Context, records []model.TxRecord) error
}

// Multi fans a batch out to several sinks and stops at the first failure.
type Multi []Storage

func (m Multi) PutTransactions(ctx context.Context, records []model.TxRecord) error {
	for _, s := range m {
		if err := s.PutTransactions(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
