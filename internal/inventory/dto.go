package inventory

import (
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of expiration dates.
const DateLayout = "2006-01-02"

// ItemDTO is the inventory item payload returned to clients.
type ItemDTO struct {
	ID             int64              `json:"id"`
	ProductID      int64              `json:"product_id"`
	ProductName    string             `json:"product_name"`
	ProductUnit    string             `json:"product_unit"`
	Quantity       decimal.Decimal    `json:"quantity"`
	ExpirationDate string             `json:"expiration_date"`
	AmountLeft     enums.AmountStatus `json:"amount_left"`
	AmountLabel    string             `json:"amount_label"`
	OwnerID        string             `json:"owner_id"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// CreateItemInput holds the values for a new item. Nil fields take defaults.
type CreateItemInput struct {
	ProductID      int64
	Quantity       *decimal.Decimal
	ExpirationDate *time.Time
	AmountLeft     *enums.AmountStatus
}

// UpdateItemInput holds the mutable fields. Nil fields keep their stored value.
type UpdateItemInput struct {
	ProductID      *int64
	Quantity       *decimal.Decimal
	ExpirationDate *time.Time
	AmountLeft     *enums.AmountStatus
}

// UpdateItemResult reports what an update did and, when applied, the new state.
type UpdateItemResult struct {
	Outcome enums.MutationOutcome `json:"outcome"`
	Item    *ItemDTO              `json:"item,omitempty"`
}

// NewItemDTO maps the persisted model to its payload.
func NewItemDTO(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	dto := &ItemDTO{
		ID:             item.ID,
		ProductID:      item.ProductID,
		Quantity:       item.Quantity,
		ExpirationDate: item.ExpirationDate.Format(DateLayout),
		AmountLeft:     item.AmountLeft,
		AmountLabel:    item.AmountLeft.String(),
		OwnerID:        item.OwnerID,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
		dto.ProductUnit = item.Product.Unit
	}
	return dto
}

func newItemDTOs(items []models.InventoryItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *NewItemDTO(&items[i]))
	}
	return out
}

// DateOnly drops the clock part of t, keeping the calendar date it expresses.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
