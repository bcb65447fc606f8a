package controllers

import (
	"net/http"

	"github.com/angelmondragon/kitchen-inventory-backend/api/responses"
	"github.com/angelmondragon/kitchen-inventory-backend/api/validators"
	productsvc "github.com/angelmondragon/kitchen-inventory-backend/internal/products"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
)

const (
	maxProductNameLen = 200
	maxProductUnitLen = 50
)

type createProductRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Unit string `json:"unit" validate:"omitempty,max=50"`
}

type updateProductRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Unit *string `json:"unit,omitempty" validate:"omitempty,max=50"`
}

func productUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable")
}

// ListProducts returns the caller's products.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), &ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id, ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), ownerID, productsvc.CreateProductInput{
			Name: validators.SanitizeString(payload.Name, maxProductNameLen),
			Unit: validators.SanitizeString(payload.Unit, maxProductUnitLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct patches name and unit. Any outcome other than applied is
// reported as not found so foreign and protected products stay invisible.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateProduct(r.Context(), ownerID, id, productsvc.UpdateProductInput{
			Name: validators.SanitizeOptional(payload.Name, maxProductNameLen),
			Unit: validators.SanitizeOptional(payload.Unit, maxProductUnitLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !result.Outcome.Applied() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, result.Product)
	}
}

// DeleteProduct removes one of the caller's products; its inventory items
// move to the DELETED product. Answers 204 whatever the outcome.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, productUnavailable())
			return
		}
		ownerID, err := requireOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := svc.DeleteOwnedProduct(r.Context(), ownerID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !outcome.Applied() && logg != nil {
			logg.Debug(logg.WithField(r.Context(), "outcome", outcome.String()), "product delete skipped")
		}
		responses.WriteNoContent(w)
	}
}
