package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusPaid      OrderStatus = "PAID"
)

// ActiveStatuses are every status an order can hold before it is paid.
var ActiveStatuses = []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusReady}

var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
	OrderStatusReady:     OrderStatusPaid,
}

var actionLabels = map[OrderStatus]string{
	OrderStatusPending:   "Start Preparing",
	OrderStatusPreparing: "Mark Ready",
	OrderStatusReady:     "Mark Collected",
}

func (s OrderStatus) Valid() bool {
	return s == OrderStatusPaid || nextStatus[s] != ""
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid
}

// Next returns the only status s may move to. PAID has none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// ActionLabel is the staff-facing name of the transition out of s.
func (s OrderStatus) ActionLabel() string {
	return actionLabels[s]
}

type Order struct {
	ID          uint
	TableID     int
	TableNumber int
	Status      OrderStatus
	Total       decimal.Decimal
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID int
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
	// Product is nil when the product was deleted after the order was placed.
	Product *Product
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ActiveOrders drops paid orders and sorts the rest oldest first.
func ActiveOrders(orders []Order) []Order {
	active := make([]Order, 0, len(orders))
	for _, o := range orders {
		if !o.Status.IsTerminal() {
			active = append(active, o)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].ID < active[j].ID
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	return active
}
