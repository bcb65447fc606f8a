package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

const metricsEntity = "item"

// Service exposes owner-scoped inventory item operations. Owner ids must be
// users.id UUIDs on postgres.
type Service interface {
	ListForOwner(ctx context.Context, ownerID string) ([]ItemDTO, error)
	ListExpiring(ctx context.Context, ownerID string, before time.Time) ([]ItemDTO, error)
	GetByID(ctx context.Context, id int64, ownerID string) (*ItemDTO, error)
	Create(ctx context.Context, ownerID string, input CreateItemInput) (*ItemDTO, error)
	Update(ctx context.Context, ownerID string, id int64, input UpdateItemInput) (*UpdateItemResult, error)
	Delete(ctx context.Context, id int64, ownerID string) (enums.MutationOutcome, error)
}

type service struct {
	repo    *Repository
	cfg     config.InventoryConfig
	metrics *metrics.InventoryMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs the inventory service.
func NewService(repo *Repository, cfg config.InventoryConfig, recorder *metrics.InventoryMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		cfg:     cfg,
		metrics: recorder,
		logg:    logg,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID string) ([]ItemDTO, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory items")
	}
	return newItemDTOs(items), nil
}

func (s *service) ListExpiring(ctx context.Context, ownerID string, before time.Time) ([]ItemDTO, error) {
	items, err := s.repo.ListExpiringByOwner(ctx, ownerID, DateOnly(before))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expiring inventory items")
	}
	return newItemDTOs(items), nil
}

// GetByID returns NOT_FOUND for missing and foreign items alike.
func (s *service) GetByID(ctx context.Context, id int64, ownerID string) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	if item.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return NewItemDTO(item), nil
}

// Create stores a new item for the owner. The product id is not checked for
// existence here; a dangling id fails on the foreign key and is reported as
// a validation error.
func (s *service) Create(ctx context.Context, ownerID string, input CreateItemInput) (*ItemDTO, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	quantity := decimal.NewFromInt(1)
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	expiration := s.now().Add(s.cfg.ShelfLife())
	if input.ExpirationDate != nil {
		expiration = *input.ExpirationDate
	}

	amount := enums.AmountStatusFull
	if input.AmountLeft != nil {
		amount = *input.AmountLeft
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		ProductID:      input.ProductID,
		Quantity:       quantity,
		ExpirationDate: DateOnly(expiration),
		AmountLeft:     amount,
		OwnerID:        ownerID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, unknownProduct()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory item")
	}

	created, err := s.repo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"item_id":    created.ID,
		"product_id": created.ProductID,
	}), "inventory item created")
	return NewItemDTO(created), nil
}

// Update applies the provided fields when the item exists and belongs to the owner.
// Any other outcome leaves storage untouched.
func (s *service) Update(ctx context.Context, ownerID string, id int64, input UpdateItemInput) (*UpdateItemResult, error) {
	if input.ProductID != nil && *input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be positive")
	}
	if input.Quantity != nil {
		if err := validateQuantity(*input.Quantity); err != nil {
			return nil, err
		}
	}
	if input.AmountLeft != nil {
		if err := validateAmount(*input.AmountLeft); err != nil {
			return nil, err
		}
	}

	item, outcome, err := s.loadOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !outcome.Applied() {
		s.metrics.ObserveMutation(metricsEntity, "update", outcome)
		return &UpdateItemResult{Outcome: outcome}, nil
	}

	if input.ProductID != nil {
		item.ProductID = *input.ProductID
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.ExpirationDate != nil {
		item.ExpirationDate = DateOnly(*input.ExpirationDate)
	}
	if input.AmountLeft != nil {
		item.AmountLeft = *input.AmountLeft
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, unknownProduct()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update inventory item")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	s.metrics.ObserveMutation(metricsEntity, "update", enums.MutationOutcomeApplied)
	return &UpdateItemResult{Outcome: enums.MutationOutcomeApplied, Item: NewItemDTO(updated)}, nil
}

// Delete removes the item when it belongs to the owner. Missing and foreign
// items are reported through the outcome, not as errors.
func (s *service) Delete(ctx context.Context, id int64, ownerID string) (enums.MutationOutcome, error) {
	_, outcome, err := s.loadOwned(ctx, id, ownerID)
	if err != nil {
		return "", err
	}
	if outcome.Applied() {
		if _, err := s.repo.Delete(ctx, id); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete inventory item")
		}
		s.logg.Info(s.logg.WithField(ctx, "item_id", id), "inventory item deleted")
	}
	s.metrics.ObserveMutation(metricsEntity, "delete", outcome)
	return outcome, nil
}

// loadOwned resolves the item and classifies the caller's access to it.
func (s *service) loadOwned(ctx context.Context, id int64, ownerID string) (*models.InventoryItem, enums.MutationOutcome, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, enums.MutationOutcomeNotFound, nil
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	if item.OwnerID != ownerID {
		return nil, enums.MutationOutcomeNotOwner, nil
	}
	return item, enums.MutationOutcomeApplied, nil
}

func unknownProduct() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "product_id does not exist").
		WithDetails(map[string]any{"field": "product_id"})
}

func validateQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be zero or greater")
	}
	return nil
}

func validateAmount(amount enums.AmountStatus) error {
	if !amount.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount_left must be one of 0, 25, 50, 75, 100").
			WithDetails(map[string]any{"allowed": enums.AmountStatuses()})
	}
	return nil
}
