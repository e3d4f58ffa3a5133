package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/filizakkol1/pizzeria/internal/domain"
	"github.com/filizakkol1/pizzeria/internal/store"
)

// storageKey is the store key the cart is persisted under.
const storageKey = "cart"

// Product is the add-time payload for a cart line: whatever the storefront
// control carried. Values are trusted as given and are not revalidated
// against the catalog.
type Product struct {
	ProductID string
	Name      string
	Size      string
	UnitPrice int
}

// Engine owns the cart: an ordered list of line items with at most one
// line per (product id, size) pair. Every successful mutation persists the
// cart and then notifies registered observers. The engine serializes all
// access with a mutex; the persisted cart itself stays last-writer-wins
// across processes.
type Engine struct {
	store store.Store
	log   *zap.Logger

	mu        sync.Mutex
	items     []domain.LineItem
	observers []func()
}

// NewEngine creates an engine initialized from the persisted cart. A
// missing or unparseable blob yields an empty cart, never an error.
func NewEngine(ctx context.Context, st store.Store, log *zap.Logger) *Engine {
	e := &Engine{
		store: st,
		log:   log,
	}
	e.Load(ctx)
	return e
}

// OnChange registers an observer invoked after every successful mutation.
// Observers pull the state they need through Items, Total or Count.
func (e *Engine) OnChange(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// AddItem merges the product into an existing line with the same
// (product id, size) by incrementing its quantity, or appends a new line
// with quantity 1. An existing line keeps its first-seen name and price.
func (e *Engine) AddItem(ctx context.Context, p Product) error {
	e.mu.Lock()

	key := domain.ItemKey{ProductID: p.ProductID, Size: p.Size}
	if i := e.indexOf(key); i >= 0 {
		e.items[i].Quantity++
	} else {
		e.items = append(e.items, domain.LineItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			Size:      p.Size,
			UnitPrice: p.UnitPrice,
			Quantity:  1,
		})
	}

	return e.commit(ctx)
}

// IncreaseQuantity increments the quantity of the line identified by key.
// A missing line is a no-op, not an error.
func (e *Engine) IncreaseQuantity(ctx context.Context, key domain.ItemKey) error {
	e.mu.Lock()

	i := e.indexOf(key)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	e.items[i].Quantity++

	return e.commit(ctx)
}

// DecreaseQuantity decrements the quantity of the line identified by key,
// removing the line entirely when it would drop below 1. A missing line is
// a no-op.
func (e *Engine) DecreaseQuantity(ctx context.Context, key domain.ItemKey) error {
	e.mu.Lock()

	i := e.indexOf(key)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	if e.items[i].Quantity > 1 {
		e.items[i].Quantity--
	} else {
		e.items = append(e.items[:i], e.items[i+1:]...)
	}

	return e.commit(ctx)
}

// RemoveItem removes the line identified by key regardless of quantity.
// A missing line is a no-op.
func (e *Engine) RemoveItem(ctx context.Context, key domain.ItemKey) error {
	e.mu.Lock()

	i := e.indexOf(key)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	e.items = append(e.items[:i], e.items[i+1:]...)

	return e.commit(ctx)
}

// Clear empties the cart and deletes the persisted blob. Used by checkout
// after an order has been committed.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()

	e.items = nil
	if err := e.store.Delete(ctx, storageKey); err != nil {
		e.mu.Unlock()
		e.log.Error("failed to clear persisted cart", zap.Error(err))
		return fmt.Errorf("clear cart: %w", err)
	}

	e.notifyLocked()
	return nil
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (e *Engine) Items() []domain.LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]domain.LineItem, len(e.items))
	copy(items, e.items)
	return items
}

// Total is the sum of unit price times quantity over all lines.
func (e *Engine) Total() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, item := range e.items {
		total += item.Subtotal()
	}
	return total
}

// Count is the sum of quantities over all lines.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

// Load replaces the in-memory cart with the persisted state. Absence and
// corruption both yield an empty cart; corruption is logged.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil

	blob, err := e.store.Get(ctx, storageKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return
	}
	if err != nil {
		e.log.Warn("failed to read persisted cart, starting empty", zap.Error(err))
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		e.log.Warn("persisted cart is unparseable, starting empty", zap.Error(err))
		return
	}
	e.items = items
}

// Save persists the current cart under the cart key.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveLocked(ctx)
}

// commit persists and notifies after a mutation. The caller must hold the
// mutex; commit releases it.
func (e *Engine) commit(ctx context.Context) error {
	if err := e.saveLocked(ctx); err != nil {
		e.mu.Unlock()
		e.log.Error("failed to persist cart", zap.Error(err))
		return err
	}
	e.notifyLocked()
	return nil
}

func (e *Engine) saveLocked(ctx context.Context) error {
	items := e.items
	if items == nil {
		items = []domain.LineItem{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := e.store.Set(ctx, storageKey, string(blob)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// notifyLocked releases the mutex and then runs the observers, so an
// observer may call back into the engine.
func (e *Engine) notifyLocked() {
	observers := make([]func(), len(e.observers))
	copy(observers, e.observers)
	e.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

func (e *Engine) indexOf(key domain.ItemKey) int {
	for i, item := range e.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}
