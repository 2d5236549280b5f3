package cart

import (
	"time"

	"ecomcart-be/internal/product"

	"github.com/shopspring/decimal"
)

// Cart is a user's cart with every line expanded to the live product.
type Cart struct {
	ID        string          `json:"_id"`
	UserID    string          `json:"userId"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Item struct {
	ID       string          `json:"_id"`
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// AddItemInput keeps Quantity as a pointer so a missing value can be
// told apart from zero.
type AddItemInput struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity"`
}

// computeTotal sums price x quantity over the current product prices.
func computeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
