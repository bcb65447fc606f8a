package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/angelmondragon/kitchen-inventory-backend/api/middleware"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

// newOwnedRequest builds a request authenticated as ownerID with the given
// chi route params (key, value pairs).
func newOwnedRequest(method, target, body, ownerID string, params ...string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	routeCtx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		routeCtx.URLParams.Add(params[i], params[i+1])
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if ownerID != "" {
		ctx = middleware.WithUserID(ctx, ownerID)
	}
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
