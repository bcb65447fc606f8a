package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/api/responses"
	pkgAuth "github.com/angelmondragon/kitchen-inventory-backend/pkg/auth"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/auth/session"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRotator struct {
	rotatedFrom string
	provided    string
	revoked     string
	rotateErr   error
	revokeErr   error
}

func (s *stubRotator) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	s.rotatedFrom = oldAccessID
	s.provided = provided
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return "new-access-id", "new-refresh", nil
}

func (s *stubRotator) Revoke(_ context.Context, accessID string) error {
	s.revoked = accessID
	return s.revokeErr
}

func sessionTestJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "kitchen-test", ExpirationMinutes: 15, RefreshTokenTTLMinutes: 60}
}

func mintSessionToken(t *testing.T, cfg config.JWTConfig, issuedAt time.Time, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, issuedAt, pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "cook@example.com",
		JTI:    jti,
	})
	require.NoError(t, err)
	return token
}

func TestAuthRefresh(t *testing.T) {
	logg := testLogger()
	cfg := sessionTestJWT()

	t.Run("rotates with expired access token", func(t *testing.T) {
		stub := &stubRotator{}
		token := mintSessionToken(t, cfg, time.Now().Add(-2*time.Hour), "old-access-id")
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"old-refresh"}`, "")
		req.Header.Set("Authorization", "Bearer "+token)

		rec := serve(AuthRefresh(stub, cfg, logg), req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "old-access-id", stub.rotatedFrom)
		assert.Equal(t, "old-refresh", stub.provided)

		var got refreshResponse
		decodeData(t, rec.Body.Bytes(), &got)
		assert.Equal(t, "new-refresh", got.RefreshToken)
		assert.Equal(t, got.AccessToken, rec.Header().Get(responses.TokenHeader))

		claims, err := pkgAuth.ParseAccessToken(cfg, got.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "new-access-id", claims.ID)
		assert.Equal(t, "cook@example.com", claims.Email)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		stub := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"stale"}`, "")
		req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, cfg, time.Now(), "id-1"))
		rec := serve(AuthRefresh(stub, cfg, logg), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		stub := &stubRotator{rotateErr: errors.New("redis down")}
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"r"}`, "")
		req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, cfg, time.Now(), "id-1"))
		rec := serve(AuthRefresh(stub, cfg, logg), req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing bearer", func(t *testing.T) {
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"r"}`, "")
		rec := serve(AuthRefresh(&stubRotator{}, cfg, logg), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other := cfg
		other.Secret = "other-secret"
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"r"}`, "")
		req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, other, time.Now(), "id-1"))
		rec := serve(AuthRefresh(&stubRotator{}, cfg, logg), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthLogout(t *testing.T) {
	logg := testLogger()
	cfg := sessionTestJWT()

	t.Run("revokes session", func(t *testing.T) {
		stub := &stubRotator{}
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/logout", "", "")
		req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, cfg, time.Now(), "access-9"))
		rec := serve(AuthLogout(stub, cfg, logg), req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "access-9", stub.revoked)
	})

	t.Run("revoke failure", func(t *testing.T) {
		stub := &stubRotator{revokeErr: errors.New("redis down")}
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/logout", "", "")
		req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, cfg, time.Now(), "access-9"))
		rec := serve(AuthLogout(stub, cfg, logg), req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("nil manager", func(t *testing.T) {
		rec := serve(AuthLogout(nil, cfg, logg), newOwnedRequest(http.MethodPost, "/api/v1/auth/logout", "", ""))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
