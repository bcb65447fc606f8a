package models

import (
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// InventoryItem is a physical stock entry of a product owned by one user.
type InventoryItem struct {
	ID             int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Quantity       decimal.Decimal    `gorm:"column:quantity;type:numeric(12,3);not null"`
	ExpirationDate time.Time          `gorm:"column:expiration_date;type:date;not null;index"`
	AmountLeft     enums.AmountStatus `gorm:"column:amount_left;type:smallint;not null"`
	ProductID      int64              `gorm:"column:product_id;not null;index"`
	Product        *Product           `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	OwnerID        string             `gorm:"column:owner_id;type:uuid;not null;index"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
