package auth

import (
	"context"
	"time"

	"hackhub/internal/domain"
	"hackhub/internal/pkg/tokens"
)

// AccountRepositoryInterface — only the methods the auth module uses.
type AccountRepositoryInterface interface {
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByProviderSubject(ctx context.Context, provider domain.Provider, subject string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// tokenIssuer is what the module needs from internal/pkg/tokens.
type tokenIssuer interface {
	GenerateAccessToken(accountID int64, roles []string) (string, error)
	GenerateRefreshToken(accountID int64) (string, error)
	ParseRefreshToken(raw string) (*tokens.RefreshClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
