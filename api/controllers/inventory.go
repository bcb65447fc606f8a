package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/api/responses"
	"github.com/angelmondragon/kitchen-inventory-backend/api/validators"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/inventory"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const maxExpiringWithinDays = 3650

type createItemRequest struct {
	ProductID      int64               `json:"product_id" validate:"required,gt=0"`
	Quantity       *decimal.Decimal    `json:"quantity,omitempty"`
	ExpirationDate *string             `json:"expiration_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AmountLeft     *enums.AmountStatus `json:"amount_left,omitempty"`
}

func (p createItemRequest) toInput() (inventory.CreateItemInput, error) {
	expiration, err := parseOptionalDate(p.ExpirationDate)
	if err != nil {
		return inventory.CreateItemInput{}, err
	}
	return inventory.CreateItemInput{
		ProductID:      p.ProductID,
		Quantity:       p.Quantity,
		ExpirationDate: expiration,
		AmountLeft:     p.AmountLeft,
	}, nil
}

type updateItemRequest struct {
	ProductID      *int64              `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	Quantity       *decimal.Decimal    `json:"quantity,omitempty"`
	ExpirationDate *string             `json:"expiration_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AmountLeft     *enums.AmountStatus `json:"amount_left,omitempty"`
}

func (p updateItemRequest) toInput() (inventory.UpdateItemInput, error) {
	expiration, err := parseOptionalDate(p.ExpirationDate)
	if err != nil {
		return inventory.UpdateItemInput{}, err
	}
	return inventory.UpdateItemInput{
		ProductID:      p.ProductID,
		Quantity:       p.Quantity,
		ExpirationDate: expiration,
		AmountLeft:     p.AmountLeft,
	}, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := time.Parse(inventory.DateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expiration_date must be formatted YYYY-MM-DD")
	}
	return &parsed, nil
}

func inventoryUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable")
}

// ListInventory returns the caller's items. With ?expiring_within_days=N only
// items expiring on or before today+N are returned, soonest first.
func ListInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		days, err := validators.ParseQueryInt(r, "expiring_within_days", -1, 0, maxExpiringWithinDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var items []inventory.ItemDTO
		if days < 0 {
			items, err = svc.ListForOwner(r.Context(), ownerID)
		} else {
			cutoff := inventory.DateOnly(time.Now().UTC()).AddDate(0, 0, days)
			items, err = svc.ListExpiring(r.Context(), ownerID, cutoff)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetInventoryItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetByID(r.Context(), id, ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func CreateInventoryItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), ownerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// UpdateInventoryItem patches the provided fields; a non-applied outcome is a 404.
func UpdateInventoryItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), ownerID, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !result.Outcome.Applied() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found"))
			return
		}
		responses.WriteSuccess(w, result.Item)
	}
}

// DeleteInventoryItem answers 204 for missing and foreign items too.
func DeleteInventoryItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := svc.Delete(r.Context(), id, ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !outcome.Applied() && logg != nil {
			logg.Debug(logg.WithField(r.Context(), "outcome", outcome.String()), "inventory delete skipped")
		}
		responses.WriteNoContent(w)
	}
}
