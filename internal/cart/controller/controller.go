package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"barorder/internal/cart/session"
	"barorder/internal/commons"
	"barorder/internal/domain"
	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
	"barorder/internal/table"
)

type ProductLookup interface {
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

type CheckoutUseCase interface {
	Execute(ctx context.Context, tableNumber int, items []domain.CartItem) (*domain.Order, error)
}

type Controller struct {
	sessions       *session.Store
	products       ProductLookup
	checkout       CheckoutUseCase
	maxTableNumber int
	logger         *zap.Logger
}

func NewController(sessions *session.Store, products ProductLookup, checkout CheckoutUseCase, maxTableNumber int, logger *zap.Logger) *Controller {
	return &Controller{
		sessions:       sessions,
		products:       products,
		checkout:       checkout,
		maxTableNumber: maxTableNumber,
		logger:         logger,
	}
}

// HandleCreateSession resolves a scanned table code and opens a session for
// it. The code is read from the body, or from ?table= when the body is empty.
func (c *Controller) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	number, err := c.resolveTable(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	sess := c.sessions.Create(number)
	c.logger.Info("session opened",
		zap.String("traceId", commons.TraceID(r.Context())),
		zap.String("sessionId", sess.ID),
		zap.Int("table", number),
	)

	commons.WriteJSON(w, http.StatusCreated, toSessionDTO(sess.View()), c.logger)
}

func (c *Controller) HandleChangeTable(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	number, err := c.resolveTable(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toSessionDTO(sess.SetTable(number)), c.logger)
}

func (c *Controller) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toSessionDTO(sess.View()), c.logger)
}

func (c *Controller) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	c.sessions.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddItem adds one unit of a catalog product to the cart. Drinks with
// no stock left cannot be added.
func (c *Controller) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	var req dto.AddItemRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}
	if req.ProductID <= 0 {
		commons.WriteError(w, r, c.logger, apperrors.NewValidationError("invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		}))
		return
	}

	product, err := c.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	if product.Stock <= 0 {
		commons.WriteError(w, r, c.logger, apperrors.NewOutOfStockError(product.Name))
		return
	}

	view, _ := sess.Update(func(ct *session.Cart) error {
		ct.Add(*product)
		return nil
	})

	commons.WriteJSON(w, http.StatusOK, toSessionDTO(view), c.logger)
}

func (c *Controller) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	productID, err := productIDParam(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	var req dto.QuantityRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}
	if req.Quantity == nil {
		commons.WriteError(w, r, c.logger, apperrors.NewValidationError("missing quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity is required",
		}))
		return
	}

	view, err := sess.Update(func(ct *session.Cart) error {
		return ct.SetQuantity(productID, *req.Quantity)
	})
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toSessionDTO(view), c.logger)
}

func (c *Controller) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	productID, err := productIDParam(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	view, _ := sess.Update(func(ct *session.Cart) error {
		ct.Remove(productID)
		return nil
	})

	commons.WriteJSON(w, http.StatusOK, toSessionDTO(view), c.logger)
}

func (c *Controller) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	view, _ := sess.Update(func(ct *session.Cart) error {
		ct.Clear()
		return nil
	})

	commons.WriteJSON(w, http.StatusOK, toSessionDTO(view), c.logger)
}

// HandleCheckout submits the session's cart as an order for its table. The
// cart is emptied only once the order is stored.
func (c *Controller) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	sess, err := c.lookupSession(r)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	var order *domain.Order
	view, err := sess.Checkout(func(tableNumber int, items []domain.CartItem) error {
		var err error
		order, err = c.checkout.Execute(r.Context(), tableNumber, items)
		return err
	})
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.CheckoutResponse{
		Message: "Order placed successfully!",
		Order:   dto.NewOrderDTO(*order),
		Session: toSessionDTO(view),
	}, c.logger)
}

func (c *Controller) lookupSession(r *http.Request) (*session.Session, error) {
	return c.sessions.Get(chi.URLParam(r, "sessionId"))
}

func (c *Controller) resolveTable(r *http.Request) (int, error) {
	var req dto.SessionRequest
	if r.ContentLength != 0 {
		if err := commons.DecodeJSON(r, &req); err != nil {
			return 0, err
		}
	}
	if req.Table == "" {
		req.Table = r.URL.Query().Get("table")
	}
	return table.ResolveCode(req.Table, c.maxTableNumber)
}

func productIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	return id, nil
}

func toSessionDTO(v session.View) dto.SessionDTO {
	out := dto.SessionDTO{
		SessionID: v.ID,
		Table:     v.Table,
		MenuPath:  table.MenuPath(v.Table),
		Items:     make([]dto.CartLineDTO, 0, len(v.Items)),
		Total:     domain.CartTotal(v.Items).InexactFloat64(),
	}
	for _, item := range v.Items {
		out.ItemCount += item.Quantity
		out.Items = append(out.Items, dto.CartLineDTO{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Category:  string(item.Product.Category),
			Price:     item.Product.Price.InexactFloat64(),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().InexactFloat64(),
		})
	}
	return out
}
