package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestOwnerColumnsMatchUserID(t *testing.T) {
	cache := &sync.Map{}
	parse := func(model any) *schema.Schema {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)
		return s
	}

	userID := parse(&User{}).LookUpField("ID")
	require.NotNil(t, userID)

	for name, model := range map[string]any{"products": &Product{}, "inventory_items": &InventoryItem{}} {
		owner := parse(model).LookUpField("OwnerID")
		require.NotNil(t, owner, name)
		assert.Equal(t, "owner_id", owner.DBName, name)
		assert.Equal(t, userID.DataType, owner.DataType, name)
		assert.Equal(t, schema.DataType("uuid"), owner.DataType, name)
	}
}

func TestProductSentinelHelpers(t *testing.T) {
	owner := "alice"
	assert.True(t, Product{Name: SentinelProductName}.IsSentinel())
	assert.False(t, Product{Name: SentinelProductName, OwnerID: &owner}.IsSentinel())
	assert.True(t, Product{OwnerID: &owner}.OwnedBy("alice"))
	assert.False(t, Product{}.OwnedBy("alice"))
}
