package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hackhub/internal/domain"
	"hackhub/internal/identity"
)

// Service orchestrates the two auth flows: provider login (identity token ->
// account -> token pair) and refresh (stored refresh token -> rotated pair).
type Service struct {
	verifiers map[domain.Provider]identity.Verifier
	accounts  AccountRepositoryInterface
	resolver  *AccountResolver
	sessions  *SessionManager
	issuer    tokenIssuer
}

func NewService(
	verifiers []identity.Verifier,
	accounts AccountRepositoryInterface,
	sessions *SessionManager,
	issuer tokenIssuer,
) *Service {
	byProvider := make(map[domain.Provider]identity.Verifier, len(verifiers))
	for _, v := range verifiers {
		byProvider[v.Provider()] = v
	}
	return &Service{
		verifiers: byProvider,
		accounts:  accounts,
		resolver:  NewAccountResolver(accounts),
		sessions:  sessions,
		issuer:    issuer,
	}
}

type LoginResult struct {
	Account          *domain.Account
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64 // access token lifetime, seconds
	SessionExpiresAt int64 // absolute session expiry, epoch millis
}

type RefreshResult struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64
	SessionExpiresAt int64
}

// LoginWithProviderToken verifies a provider-issued ID token, resolves the
// local account and opens a fresh refresh-token family.
func (s *Service) LoginWithProviderToken(ctx context.Context, provider domain.Provider, rawIDToken string) (*LoginResult, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, fmt.Errorf("no verifier configured for provider %q", provider)
	}

	claims, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.resolver.ResolveOrCreate(ctx, provider, claims.Subject, claims)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	accessToken, err := s.issuer.GenerateAccessToken(account.ID, account.Roles)
	if err != nil {
		return nil, err
	}

	rec, refreshRaw, err := s.sessions.CreateFamily(ctx, account)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("account_id", account.ID).
		Str("provider", string(provider)).
		Str("family_id", rec.FamilyID).
		Msg("login")

	return &LoginResult{
		Account:          account,
		AccessToken:      accessToken,
		RefreshToken:     refreshRaw,
		ExpiresIn:        int64(s.issuer.AccessTTL().Seconds()),
		SessionExpiresAt: rec.SessionExpiresAt.UnixMilli(),
	}, nil
}

// Refresh validates and rotates the presented refresh token and mints a new
// access token for its owner.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*RefreshResult, error) {
	account, successor, newRaw, err := s.sessions.ValidateAndRotate(ctx, refreshRaw)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.GenerateAccessToken(account.ID, account.Roles)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken:      accessToken,
		RefreshToken:     newRaw,
		ExpiresIn:        int64(s.issuer.AccessTTL().Seconds()),
		SessionExpiresAt: successor.SessionExpiresAt.UnixMilli(),
	}, nil
}

// Logout revokes the presented refresh token, best effort.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	return s.sessions.Revoke(ctx, refreshRaw)
}

func (s *Service) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// UpdateProfile writes the self-maintained fields (bio, skills, cv, team).
// Provider-sourced fields are untouchable here; they refresh on login only.
func (s *Service) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		account.Bio = *req.Bio
	}
	if req.Skills != nil {
		account.Skills = *req.Skills
	}
	if req.CVURL != nil {
		account.CVURL = *req.CVURL
	}
	if req.Team != nil {
		account.Team = *req.Team
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
