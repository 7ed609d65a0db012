package usecase

import (
	"context"

	"go.uber.org/zap"

	"barorder/internal/domain"
	"barorder/internal/errors"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, tableNumber int, cart []domain.CartItem) (*domain.Order, error)
}

type CheckoutUseCase struct {
	placer           OrderPlacer
	notifier         Notifier
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewCheckoutUseCase(placer OrderPlacer, notifier Notifier, logger *zap.Logger, maxRetryAttempts int) *CheckoutUseCase {
	return &CheckoutUseCase{
		placer:           placer,
		notifier:         notifier,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// Execute submits a cart for a table. A missing table or an empty cart is an
// InvalidOrder error. Store failures come back as an order submit error and
// leave nothing behind.
func (uc *CheckoutUseCase) Execute(ctx context.Context, tableNumber int, cart []domain.CartItem) (*domain.Order, error) {
	if err := validateCheckout(tableNumber, cart); err != nil {
		return nil, err
	}

	uc.logger.Info("checkout started", zap.Int("table", tableNumber), zap.Int("lines", len(cart)))

	var order *domain.Order
	err := withRetry(ctx, uc.logger, uc.maxRetryAttempts, "checkout", func() error {
		var err error
		order, err = uc.placer.PlaceOrder(ctx, tableNumber, cart)
		return err
	})
	if err != nil {
		uc.logger.Error("checkout failed", zap.Int("table", tableNumber), zap.Error(err))
		return nil, errors.NewOrderSubmitError(err)
	}

	if uc.notifier != nil {
		uc.notifier.Refresh()
	}

	return order, nil
}

func validateCheckout(tableNumber int, cart []domain.CartItem) error {
	var details []errors.ValidationDetail

	if tableNumber <= 0 {
		details = append(details, errors.ValidationDetail{Field: "table", Message: "no table selected"})
	}
	if len(cart) == 0 {
		details = append(details, errors.ValidationDetail{Field: "cart", Message: "cart is empty"})
	}
	for _, line := range cart {
		if line.Quantity < 1 {
			details = append(details, errors.ValidationDetail{Field: "cart", Message: "every line needs a quantity of at least 1"})
			break
		}
	}

	if len(details) > 0 {
		return errors.NewInvalidOrderError(details...)
	}
	return nil
}
