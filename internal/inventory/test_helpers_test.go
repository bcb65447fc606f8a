package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDBWithDSN(t, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

// openForeignKeyDB enforces foreign keys the way postgres does.
func openForeignKeyDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDBWithDSN(t, fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()))
}

func openTestDBWithDSN(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func newTestService(t *testing.T) (*service, *gorm.DB) {
	t.Helper()
	return newTestServiceOn(t, openTestDB(t))
}

func newTestServiceOn(t *testing.T, conn *gorm.DB) (*service, *gorm.DB) {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		config.InventoryConfig{DefaultShelfLifeDays: 7, DefaultUnit: "count"},
		metrics.NewInventoryMetrics(prometheus.NewRegistry()),
		logger.Discard(),
	)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return fixedNow }
	return impl, conn
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, ownerID, name string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Unit: "count", OwnerID: &ownerID}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func mustCreateItem(t *testing.T, svc *service, ownerID string, productID int64) *ItemDTO {
	t.Helper()
	item, err := svc.Create(context.Background(), ownerID, CreateItemInput{ProductID: productID})
	require.NoError(t, err)
	return item
}

func countItems(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(&models.InventoryItem{}).Count(&count).Error)
	return count
}

func defaultInventoryConfig() config.InventoryConfig {
	return config.InventoryConfig{DefaultShelfLifeDays: 7, DefaultUnit: "count"}
}
