package controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"barorder/internal/commons"
	"barorder/internal/domain"
	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
)

type OrderLister interface {
	ListActiveOrders(ctx context.Context) ([]domain.Order, error)
}

type AdvanceStatusUseCase interface {
	Execute(ctx context.Context, orderID uint, next domain.OrderStatus) ([]domain.Order, error)
}

type FulfillmentController struct {
	orders  OrderLister
	advance AdvanceStatusUseCase
	logger  *zap.Logger
}

func NewFulfillmentController(orders OrderLister, advance AdvanceStatusUseCase, logger *zap.Logger) *FulfillmentController {
	return &FulfillmentController{
		orders:  orders,
		advance: advance,
		logger:  logger,
	}
}

// HandleListActiveOrders serves the staff queue, oldest first.
func (c *FulfillmentController) HandleListActiveOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.ListActiveOrders(r.Context())
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderListResponse(orders), c.logger)
}

func (c *FulfillmentController) HandleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", commons.TraceID(r.Context())))

	orderID, err := strconv.ParseUint(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil || orderID == 0 {
		logger.Warn("invalid orderId in path", zap.String("orderId", chi.URLParam(r, "orderId")))
		commons.WriteError(w, r, c.logger, apperrors.NewValidationError("invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		}))
		return
	}

	var req dto.AdvanceStatusRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	next := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	orders, err := c.advance.Execute(r.Context(), uint(orderID), next)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewOrderListResponse(orders), c.logger)
}
