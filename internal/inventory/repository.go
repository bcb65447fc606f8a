package inventory

import (
	"context"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/internal/repo"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists inventory items.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Create inserts the item and fills in its generated id.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).Omit("Product").Create(item).Error
}

// FindByID loads the item with its product.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByOwner returns the owner's items in insertion order.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.DB(ctx).
		Preload("Product").
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// ListExpiringByOwner returns the owner's items expiring on or before the cutoff, soonest first.
func (r *Repository) ListExpiringByOwner(ctx context.Context, ownerID string, before time.Time) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.DB(ctx).
		Preload("Product").
		Where("owner_id = ? AND expiration_date <= ?", ownerID, before).
		Order("expiration_date ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Update writes the four mutable columns of the item.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).
		Model(&models.InventoryItem{ID: item.ID}).
		Updates(map[string]any{
			"product_id":      item.ProductID,
			"quantity":        item.Quantity,
			"expiration_date": item.ExpirationDate,
			"amount_left":     item.AmountLeft,
		}).Error
}

// Delete removes the item and reports how many rows went away.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.DB(ctx).Delete(&models.InventoryItem{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// ReassignProduct re-points every item of fromID at toID.
func (r *Repository) ReassignProduct(ctx context.Context, fromID, toID int64) (int64, error) {
	res := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("product_id = ?", fromID).
		Updates(map[string]any{"product_id": toID})
	return res.RowsAffected, res.Error
}
