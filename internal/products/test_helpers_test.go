package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/kitchen-inventory-backend/internal/inventory"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testInventoryConfig = config.InventoryConfig{DefaultShelfLifeDays: 7, DefaultUnit: "count"}

type testEnv struct {
	conn     *gorm.DB
	registry *prometheus.Registry
	products Service
	items    inventory.Service
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func newProductService(t *testing.T, conn *gorm.DB, recorder *metrics.InventoryMetrics) Service {
	t.Helper()
	svc, err := NewService(
		context.Background(),
		NewRepository(conn),
		inventory.NewRepository(conn),
		db.NewFromConn(conn),
		testInventoryConfig,
		recorder,
		logger.Discard(),
	)
	require.NoError(t, err)
	return svc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := openTestDB(t)
	reg := prometheus.NewRegistry()
	recorder := metrics.NewInventoryMetrics(reg)

	items, err := inventory.NewService(inventory.NewRepository(conn), testInventoryConfig, recorder, logger.Discard())
	require.NoError(t, err)

	return &testEnv{
		conn:     conn,
		registry: reg,
		products: newProductService(t, conn, recorder),
		items:    items,
	}
}

func (e *testEnv) mustCreateProduct(t *testing.T, ownerID, name string) *ProductDTO {
	t.Helper()
	created, err := e.products.CreateProduct(context.Background(), ownerID, CreateProductInput{Name: name})
	require.NoError(t, err)
	return created
}

func (e *testEnv) mustCreateItem(t *testing.T, ownerID string, productID int64) *inventory.ItemDTO {
	t.Helper()
	item, err := e.items.Create(context.Background(), ownerID, inventory.CreateItemInput{ProductID: productID})
	require.NoError(t, err)
	return item
}

func (e *testEnv) productCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.conn.Model(&models.Product{}).Count(&count).Error)
	return count
}

func (e *testEnv) itemProductIDs(t *testing.T) map[int64]int64 {
	t.Helper()
	var rows []models.InventoryItem
	require.NoError(t, e.conn.Order("id ASC").Find(&rows).Error)
	out := make(map[int64]int64, len(rows))
	for _, row := range rows {
		out[row.ID] = row.ProductID
	}
	return out
}

func (e *testEnv) counterValue(t *testing.T, name string) float64 {
	t.Helper()
	mfs, err := e.registry.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
