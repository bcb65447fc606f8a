package product

import (
	"context"
	"errors"

	"github.com/angelmondragon/kitchen-inventory-backend/internal/repo"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists products.
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

// FindByID loads the product by id, sentinel included.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindOwned loads the product only when it belongs to ownerID.
func (r *Repository) FindOwned(ctx context.Context, id int64, ownerID string) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products in insertion order, never the row with excludeID.
// A nil owner lists every user-owned product.
func (r *Repository) List(ctx context.Context, ownerID *string, excludeID int64) ([]models.Product, error) {
	query := r.DB(ctx).Where("id <> ?", excludeID)
	if ownerID == nil {
		query = query.Where("owner_id IS NOT NULL")
	} else {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var products []models.Product
	err := query.Order("id ASC").Find(&products).Error
	return products, err
}

// Create inserts the product and fills in its generated id.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

// UpdateDetails writes name and unit; ownership never changes.
func (r *Repository) UpdateDetails(ctx context.Context, id int64, name, unit string) error {
	return r.DB(ctx).
		Model(&models.Product{ID: id}).
		Updates(map[string]any{"name": name, "unit": unit}).Error
}

// Delete removes the product row and reports how many rows went away.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.DB(ctx).Delete(&models.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// EnsureSentinel returns the DELETED product, creating it when the store has none.
func (r *Repository) EnsureSentinel(ctx context.Context, unit string) (*models.Product, error) {
	var sentinel models.Product
	err := r.DB(ctx).
		Where("name = ? AND owner_id IS NULL", models.SentinelProductName).
		Order("id ASC").
		First(&sentinel).Error
	if err == nil {
		return &sentinel, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sentinel = models.Product{Name: models.SentinelProductName, Unit: unit}
	if err := r.DB(ctx).Create(&sentinel).Error; err != nil {
		return nil, err
	}
	return &sentinel, nil
}
