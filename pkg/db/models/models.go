package models

// All lists every model in dependency order for schema creation.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&InventoryItem{},
	}
}
