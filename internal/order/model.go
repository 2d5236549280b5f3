package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const StatusCompleted Status = "completed"

// Order is immutable once placed. Items keep the product name and price
// as they were at checkout.
type Order struct {
	ID            string          `json:"_id"`
	UserID        string          `json:"userId"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Customer is the authenticated buyer. Checkout never takes these
// fields from the request body.
type Customer struct {
	UserID string
	Name   string
	Email  string
}

// Receipt is what a successful checkout returns to the client.
type Receipt struct {
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
	OrderID       string          `json:"orderId"`
}

func (o *Order) Receipt() *Receipt {
	return &Receipt{
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         o.Items,
		Total:         o.Total,
		Timestamp:     o.CreatedAt,
		OrderID:       o.ID,
	}
}

// line is a cart line joined with its product inside the checkout
// transaction. The product fields are invalid when the product is gone.
type line struct {
	ProductID string
	Quantity  int
	Name      string
	Price     decimal.Decimal
	Stock     int
	Found     bool
}

func totalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
