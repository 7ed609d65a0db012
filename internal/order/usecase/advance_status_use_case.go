package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"barorder/internal/domain"
	"barorder/internal/errors"
)

type Fulfillment interface {
	ListActiveOrders(ctx context.Context) ([]domain.Order, error)
	AdvanceStatus(ctx context.Context, orderID uint, next domain.OrderStatus) error
}

type AdvanceStatusUseCase struct {
	fulfillment      Fulfillment
	notifier         Notifier
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewAdvanceStatusUseCase(fulfillment Fulfillment, notifier Notifier, logger *zap.Logger, maxRetryAttempts int) *AdvanceStatusUseCase {
	return &AdvanceStatusUseCase{
		fulfillment:      fulfillment,
		notifier:         notifier,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// Execute advances an order and returns the refreshed active list.
func (uc *AdvanceStatusUseCase) Execute(ctx context.Context, orderID uint, next domain.OrderStatus) ([]domain.Order, error) {
	if !next.Valid() {
		return nil, errors.NewValidationError("invalid status", errors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("%q is not an order status", next),
		})
	}

	err := withRetry(ctx, uc.logger, uc.maxRetryAttempts, "advance-status", func() error {
		return uc.fulfillment.AdvanceStatus(ctx, orderID, next)
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, errors.NewRemoteCallError("Failed to update order status", err)
	}

	if uc.notifier != nil {
		uc.notifier.Refresh()
	}

	return uc.fulfillment.ListActiveOrders(ctx)
}

func isDomainError(err error) bool {
	if _, ok := errors.IsNotFoundError(err); ok {
		return true
	}
	if _, ok := errors.IsConflictError(err); ok {
		return true
	}
	if _, ok := errors.IsDeadlockError(err); ok {
		return true
	}
	_, ok := errors.IsValidationError(err)
	return ok
}
