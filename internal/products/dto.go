package product

import (
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/enums"
)

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductInput holds the values for a new product.
type CreateProductInput struct {
	Name string
	Unit string
}

// UpdateProductInput holds the mutable fields. Nil fields keep their stored value.
type UpdateProductInput struct {
	Name *string
	Unit *string
}

// UpdateProductResult reports what an update did and, when applied, the new state.
type UpdateProductResult struct {
	Outcome enums.MutationOutcome `json:"outcome"`
	Product *ProductDTO           `json:"product,omitempty"`
}

// NewProductDTO maps the persisted model to its payload.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:        product.ID,
		Name:      product.Name,
		Unit:      product.Unit,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
	if product.OwnerID != nil {
		dto.OwnerID = *product.OwnerID
	}
	return dto
}

func newProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *NewProductDTO(&products[i]))
	}
	return out
}
