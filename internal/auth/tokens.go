package auth

import (
	"context"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/internal/users"
	pkgAuth "github.com/angelmondragon/kitchen-inventory-backend/pkg/auth"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/auth/session"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
)

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

// issueTokens mints an access token and stores the refresh session keyed by its jti.
func issueTokens(ctx context.Context, sessions sessionManager, cfg config.JWTConfig, user *models.User, now time.Time) (*TokenResponse, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(cfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}
