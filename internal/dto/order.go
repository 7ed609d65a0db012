package dto

import (
	"time"

	"barorder/internal/domain"
)

type OrderItemDTO struct {
	ID          uint    `json:"id"`
	ProductID   *int    `json:"productId,omitempty"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type NextActionDTO struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

type OrderDTO struct {
	ID          uint           `json:"id"`
	TableNumber int            `json:"tableNumber"`
	Status      string         `json:"status"`
	Total       float64        `json:"total"`
	Items       []OrderItemDTO `json:"items"`
	NextAction  *NextActionDTO `json:"nextAction,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders []OrderDTO `json:"orders"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// FeedMessage is pushed to fulfillment dashboards over the websocket.
type FeedMessage struct {
	Type        string     `json:"type"`
	Orders      []OrderDTO `json:"orders"`
	NewOrderIDs []uint     `json:"newOrderIds"`
	Notify      bool       `json:"notify"`
	Message     string     `json:"message,omitempty"`
}

const deletedProductName = "(deleted product)"

func NewOrderDTO(o domain.Order) OrderDTO {
	out := OrderDTO{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		Total:       o.Total.InexactFloat64(),
		Items:       make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}

	for _, item := range o.Items {
		line := OrderItemDTO{
			ID:          item.ID,
			ProductName: deletedProductName,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
			Subtotal:    item.Subtotal().InexactFloat64(),
		}
		// Deleted products have no id to report.
		if item.Product != nil {
			id := item.Product.ID
			line.ProductID = &id
			line.ProductName = item.Product.Name
			line.Category = string(item.Product.Category)
		}
		out.Items = append(out.Items, line)
	}

	if next, ok := o.Status.Next(); ok {
		out.NextAction = &NextActionDTO{Status: string(next), Label: o.Status.ActionLabel()}
	}

	return out
}

func NewOrderListResponse(orders []domain.Order) OrderListResponse {
	resp := OrderListResponse{Orders: make([]OrderDTO, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, NewOrderDTO(o))
	}
	return resp
}
