package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/filizakkol1/pizzeria/internal/domain"
)

// CartSource is the cart the checkout reads from and clears after a
// successful submission.
type CartSource interface {
	Items() []domain.LineItem
	Clear(ctx context.Context) error
}

// OrderSink records committed orders. Appending must never touch prior
// entries.
type OrderSink interface {
	Append(ctx context.Context, order domain.Order) error
}

// Input is the checkout form as submitted. Phone is expected in its masked
// display form; the web layer applies the input mask before calling Submit.
type Input struct {
	Name    string
	Phone   string
	Address string
}

// Service drives a single order-submission attempt: summary, validation,
// commit. Every failure leaves the cart and the order log untouched.
type Service struct {
	cart   CartSource
	orders OrderSink
	log    *zap.Logger
	now    func() time.Time
}

func NewService(cart CartSource, orders OrderSink, log *zap.Logger) *Service {
	return &Service{
		cart:   cart,
		orders: orders,
		log:    log,
		now:    time.Now,
	}
}

// Summary computes the current checkout figures from the cart.
func (s *Service) Summary() Summary {
	return BuildSummary(s.cart.Items())
}

// Submit validates the form, commits an immutable order snapshot to the
// order log and clears the cart. No partial order is ever recorded: the
// order is appended only after every check has passed.
func (s *Service) Submit(ctx context.Context, in Input) (*domain.Order, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)
	if name == "" || phone == "" || address == "" {
		return nil, ErrMissingFields
	}
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	summary := BuildSummary(items)
	now := s.now()
	order := domain.Order{
		ID: now.UnixMilli(),
		Customer: domain.Customer{
			Name:    name,
			Phone:   phone,
			Address: address,
		},
		Items:        items,
		TotalDisplay: summary.TotalDisplay(),
		CreatedAt:    now.Format("02.01.2006, 15:04:05"),
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}

	// The order is committed at this point. A failed cart clear leaves a
	// stale cart behind but must not look like a failed checkout.
	if err := s.cart.Clear(ctx); err != nil {
		s.log.Warn("order recorded but cart not cleared", zap.Int64("order_id", order.ID), zap.Error(err))
	}

	s.log.Info("order submitted",
		zap.Int64("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalDisplay),
	)
	return &order, nil
}
