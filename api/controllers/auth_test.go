package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/angelmondragon/kitchen-inventory-backend/api/responses"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/auth"
	"github.com/angelmondragon/kitchen-inventory-backend/internal/users"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoginService struct {
	req auth.LoginRequest
	err error
}

func (s *stubLoginService) Login(_ context.Context, req auth.LoginRequest) (*auth.TokenResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &auth.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &users.UserDTO{ID: uuid.New(), Email: req.Email},
	}, nil
}

type stubRegisterService struct {
	req auth.RegisterRequest
	err error
}

func (s *stubRegisterService) Register(_ context.Context, req auth.RegisterRequest) (*auth.TokenResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func TestAuthLogin(t *testing.T) {
	logg := testLogger()

	t.Run("success sets token header", func(t *testing.T) {
		stub := &stubLoginService{}
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"cook@example.com","password":"secret"}`, "")
		rec := serve(AuthLogin(stub, logg), req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "access", rec.Header().Get(responses.TokenHeader))
		assert.Equal(t, "cook@example.com", stub.req.Email)

		var got auth.TokenResponse
		decodeData(t, rec.Body.Bytes(), &got)
		assert.Equal(t, "refresh", got.RefreshToken)
	})

	t.Run("invalid email", func(t *testing.T) {
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"nope","password":"secret"}`, "")
		rec := serve(AuthLogin(&stubLoginService{}, logg), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		stub := &stubLoginService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"cook@example.com","password":"wrong"}`, "")
		rec := serve(AuthLogin(stub, logg), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Header().Get(responses.TokenHeader))
	})

	t.Run("nil service", func(t *testing.T) {
		req := newOwnedRequest(http.MethodPost, "/api/v1/auth/login", `{}`, "")
		rec := serve(AuthLogin(nil, logg), req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAuthRegister(t *testing.T) {
	logg := testLogger()

	t.Run("created", func(t *testing.T) {
		stub := &stubRegisterService{}
		body := `{"email":"cook@example.com","password":"Longenough1!","display_name":"  Chef  "}`
		rec := serve(AuthRegister(stub, logg), newOwnedRequest(http.MethodPost, "/api/v1/auth/register", body, ""))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "access", rec.Header().Get(responses.TokenHeader))
		assert.Equal(t, "Chef", stub.req.DisplayName)
	})

	t.Run("conflict", func(t *testing.T) {
		stub := &stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
		body := `{"email":"cook@example.com","password":"Longenough1!"}`
		rec := serve(AuthRegister(stub, logg), newOwnedRequest(http.MethodPost, "/api/v1/auth/register", body, ""))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		rec := serve(AuthRegister(&stubRegisterService{}, logg), newOwnedRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"cook@example.com"}`, ""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
