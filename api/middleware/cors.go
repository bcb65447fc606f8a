package middleware

import (
	"net/http"

	"github.com/angelmondragon/kitchen-inventory-backend/api/responses"
	"github.com/go-chi/cors"
)

// CORS returns middleware that lets the listed browser origins call the API.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", responses.TokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
