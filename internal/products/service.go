package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/kitchen-inventory-backend/internal/inventory"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/metrics"
	"gorm.io/gorm"
)

const metricsEntity = "product"

// Service exposes the product catalog operations. Owner ids are opaque to the
// service but the postgres column is a users.id UUID, so a malformed owner
// fails there as a DEPENDENCY_ERROR instead of matching nothing.
type Service interface {
	ListProducts(ctx context.Context, ownerID *string) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int64, ownerID string) (*ProductDTO, error)
	CreateProduct(ctx context.Context, ownerID string, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, ownerID string, id int64, input UpdateProductInput) (*UpdateProductResult, error)
	DeleteProduct(ctx context.Context, id int64) (enums.MutationOutcome, error)
	DeleteOwnedProduct(ctx context.Context, ownerID string, id int64) (enums.MutationOutcome, error)
	SentinelID() int64
}

type service struct {
	repo        *Repository
	items       *inventory.Repository
	dbClient    *db.Client
	defaultUnit string
	metrics     *metrics.InventoryMetrics
	logg        *logger.Logger
	sentinelID  int64
}

// NewService constructs the product service and resolves the DELETED sentinel,
// creating it when the store has none.
func NewService(ctx context.Context, repo *Repository, items *inventory.Repository, dbClient *db.Client, cfg config.InventoryConfig, recorder *metrics.InventoryMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	unit := strings.TrimSpace(cfg.DefaultUnit)
	if unit == "" {
		unit = "count"
	}

	sentinel, err := repo.EnsureSentinel(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("resolving %s product: %w", models.SentinelProductName, err)
	}
	if sentinel.ID != models.CanonicalSentinelID {
		logg.Warn(logg.WithField(ctx, "sentinel_id", sentinel.ID), "DELETED product is not at its canonical id")
	}

	return &service{
		repo:        repo,
		items:       items,
		dbClient:    dbClient,
		defaultUnit: unit,
		metrics:     recorder,
		logg:        logg,
		sentinelID:  sentinel.ID,
	}, nil
}

func (s *service) SentinelID() int64 {
	return s.sentinelID
}

// ListProducts lists one owner's products, or every user product when ownerID is nil.
func (s *service) ListProducts(ctx context.Context, ownerID *string) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, ownerID, s.sentinelID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return newProductDTOs(products), nil
}

func (s *service) GetProduct(ctx context.Context, id int64, ownerID string) (*ProductDTO, error) {
	if id == s.sentinelID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) CreateProduct(ctx context.Context, ownerID string, input CreateProductInput) (*ProductDTO, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:    name,
		Unit:    s.normalizeUnit(input.Unit),
		OwnerID: &ownerID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "product created")
	return NewProductDTO(product), nil
}

// UpdateProduct changes name and unit of an owned product. The sentinel,
// missing ids and foreign products come back as non-applied outcomes.
func (s *service) UpdateProduct(ctx context.Context, ownerID string, id int64, input UpdateProductInput) (*UpdateProductResult, error) {
	var name *string
	if input.Name != nil {
		normalized, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = &normalized
	}

	if id == s.sentinelID {
		return s.skippedUpdate(enums.MutationOutcomeProtected), nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return s.skippedUpdate(enums.MutationOutcomeNotFound), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.IsSentinel() {
		return s.skippedUpdate(enums.MutationOutcomeProtected), nil
	}
	if !product.OwnedBy(ownerID) {
		return s.skippedUpdate(enums.MutationOutcomeNotOwner), nil
	}

	if name != nil {
		product.Name = *name
	}
	if input.Unit != nil {
		product.Unit = s.normalizeUnit(*input.Unit)
	}

	if err := s.repo.UpdateDetails(ctx, product.ID, product.Name, product.Unit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	updated, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	s.metrics.ObserveMutation(metricsEntity, "update", enums.MutationOutcomeApplied)
	return &UpdateProductResult{Outcome: enums.MutationOutcomeApplied, Product: NewProductDTO(updated)}, nil
}

// DeleteProduct removes the product regardless of owner, moving its items to
// the DELETED product first.
func (s *service) DeleteProduct(ctx context.Context, id int64) (enums.MutationOutcome, error) {
	return s.deleteProduct(ctx, id, nil)
}

// DeleteOwnedProduct behaves like DeleteProduct but only for the owner's products.
func (s *service) DeleteOwnedProduct(ctx context.Context, ownerID string, id int64) (enums.MutationOutcome, error) {
	return s.deleteProduct(ctx, id, &ownerID)
}

func (s *service) deleteProduct(ctx context.Context, id int64, ownerID *string) (enums.MutationOutcome, error) {
	if id == s.sentinelID {
		s.metrics.ObserveMutation(metricsEntity, "delete", enums.MutationOutcomeProtected)
		return enums.MutationOutcomeProtected, nil
	}

	var (
		outcome  enums.MutationOutcome
		moved    int64
		txLoaded *models.Product
	)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if db.IsNotFound(err) {
				outcome = enums.MutationOutcomeNotFound
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		switch {
		case product.IsSentinel():
			outcome = enums.MutationOutcomeProtected
			return nil
		case ownerID != nil && !product.OwnedBy(*ownerID):
			outcome = enums.MutationOutcomeNotOwner
			return nil
		}

		moved, err = s.items.WithTx(tx).ReassignProduct(ctx, id, s.sentinelID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reassign inventory items")
		}
		if _, err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		outcome = enums.MutationOutcomeApplied
		txLoaded = product
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return "", err
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	s.metrics.ObserveMutation(metricsEntity, "delete", outcome)
	if outcome.Applied() {
		s.metrics.AddReassigned(moved)
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"product_id":       txLoaded.ID,
			"items_reassigned": moved,
			"sentinel_id":      s.sentinelID,
		}), "product deleted")
	}
	return outcome, nil
}

func (s *service) skippedUpdate(outcome enums.MutationOutcome) *UpdateProductResult {
	s.metrics.ObserveMutation(metricsEntity, "update", outcome)
	return &UpdateProductResult{Outcome: outcome}
}

func (s *service) normalizeUnit(unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return s.defaultUnit
	}
	return unit
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required").
			WithDetails(map[string]any{"field": "name"})
	}
	return name, nil
}
