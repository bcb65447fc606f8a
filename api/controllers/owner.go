package controllers

import (
	"net/http"

	"github.com/angelmondragon/kitchen-inventory-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
)

// requireOwner returns the authenticated owner id placed on the context by middleware.Auth.
func requireOwner(r *http.Request) (string, error) {
	ownerID := middleware.UserIDFromContext(r.Context())
	if ownerID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return ownerID, nil
}
