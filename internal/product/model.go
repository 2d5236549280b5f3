package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type NewProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
}

// CreateInput is either one product or a batch. Exactly one side is set
// after decoding.
type CreateInput struct {
	Single *NewProduct
	Batch  []NewProduct
}

func (in CreateInput) IsBatch() bool {
	return in.Single == nil
}

func (in CreateInput) Items() []NewProduct {
	if in.Single != nil {
		return []NewProduct{*in.Single}
	}
	return in.Batch
}

var errInvalidCreatePayload = errors.New("product payload must be an object or an array")

func (in *CreateInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errInvalidCreatePayload
	}

	switch trimmed[0] {
	case '{':
		var p NewProduct
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return err
		}
		*in = CreateInput{Single: &p}
	case '[':
		var batch []NewProduct
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return err
		}
		if batch == nil {
			batch = []NewProduct{}
		}
		*in = CreateInput{Batch: batch}
	default:
		return errInvalidCreatePayload
	}
	return nil
}

type CreateResult struct {
	Products []Product
	Batch    bool
	Message  string
}
