package models

import "time"

const (
	// SentinelProductName is the reserved product that orphaned items are re-pointed at.
	SentinelProductName = "DELETED"
	// CanonicalSentinelID is the id the migrations seed the sentinel with.
	CanonicalSentinelID int64 = 1
)

// Product is a user-owned catalog entry ("Apples", unit "count").
// OwnerID is nil only for the sentinel row.
type Product struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Unit      string    `gorm:"column:unit;type:text;not null"`
	OwnerID   *string   `gorm:"column:owner_id;type:uuid;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// IsSentinel reports whether the row is the reserved DELETED product.
func (p Product) IsSentinel() bool {
	return p.OwnerID == nil && p.Name == SentinelProductName
}

// OwnedBy reports whether ownerID matches the product owner exactly.
func (p Product) OwnedBy(ownerID string) bool {
	return p.OwnerID != nil && *p.OwnerID == ownerID
}
