package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hackhub/internal/domain"
	"hackhub/internal/identity"
)

// AccountResolver maps a (provider, subject) pair to a local account: creates
// it on first sight, refreshes mutable profile fields on every later sight.
type AccountResolver struct {
	accounts AccountRepositoryInterface
}

func NewAccountResolver(accounts AccountRepositoryInterface) *AccountResolver {
	return &AccountResolver{accounts: accounts}
}

// ResolveOrCreate is idempotent under repeated identical claims: one account
// per provider identity, last-login advancing on every call. An email already
// bound to a different provider identity fails with ErrAccountConflict and
// mutates nothing — a silent merge would be an account takeover.
func (r *AccountResolver) ResolveOrCreate(ctx context.Context, provider domain.Provider, subject string, claims *identity.Claims) (*domain.Account, error) {
	now := time.Now().UTC()

	account, err := r.accounts.GetByProviderSubject(ctx, provider, subject)
	if err == nil {
		applyProfile(account, claims)
		account.EmailVerified = true
		account.LastLoginAt = &now
		if err := r.accounts.Update(ctx, account); err != nil {
			return nil, err
		}
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := r.accounts.GetByEmail(ctx, claims.Email); err == nil {
		return nil, ErrAccountConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	account = &domain.Account{
		Email:           claims.Email,
		Provider:        provider,
		ProviderSubject: subject,
		Name:            claims.Name,
		GivenName:       claims.GivenName,
		FamilyName:      claims.FamilyName,
		Picture:         claims.Picture,
		Locale:          claims.Locale,
		EmailVerified:   true,
		IsActive:        true,
		Roles:           []string{},
		LastLoginAt:     &now,
	}
	if err := r.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// applyProfile refreshes a field only when the provider sent a non-empty value
// that differs from what we have.
func applyProfile(account *domain.Account, claims *identity.Claims) {
	if claims.Name != "" && claims.Name != account.Name {
		account.Name = claims.Name
	}
	if claims.GivenName != "" && claims.GivenName != account.GivenName {
		account.GivenName = claims.GivenName
	}
	if claims.FamilyName != "" && claims.FamilyName != account.FamilyName {
		account.FamilyName = claims.FamilyName
	}
	if claims.Picture != "" && claims.Picture != account.Picture {
		account.Picture = claims.Picture
	}
	if claims.Locale != "" && claims.Locale != account.Locale {
		account.Locale = claims.Locale
	}
}
