package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/filizakkol1/pizzeria/internal/domain"
	"github.com/filizakkol1/pizzeria/internal/store"
)

// storageKey is the store key the order log is persisted under.
const storageKey = "orders"

// Log is the append-only order history, persisted independently from the
// cart. An unreadable blob is treated as an empty history.
type Log struct {
	store store.Store
	log   *zap.Logger
}

func NewLog(st store.Store, log *zap.Logger) *Log {
	return &Log{
		store: st,
		log:   log,
	}
}

// List returns all recorded orders, oldest first. Absence or corruption of
// the persisted blob yields an empty list, never an error.
func (l *Log) List(ctx context.Context) []domain.Order {
	blob, err := l.store.Get(ctx, storageKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		l.log.Warn("failed to read order log, treating as empty", zap.Error(err))
		return nil
	}

	var orders []domain.Order
	if err := json.Unmarshal([]byte(blob), &orders); err != nil {
		l.log.Warn("order log is unparseable, treating as empty", zap.Error(err))
		return nil
	}
	return orders
}

// Append records a new order after all existing ones and persists the log.
// Prior entries are never modified.
func (l *Log) Append(ctx context.Context, order domain.Order) error {
	orders := append(l.List(ctx), order)

	blob, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode order log: %w", err)
	}
	if err := l.store.Set(ctx, storageKey, string(blob)); err != nil {
		return fmt.Errorf("persist order log: %w", err)
	}
	return nil
}
