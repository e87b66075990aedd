package auth

import "hackhub/internal/domain"

type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AccountPublic is the account projection returned to clients.
type AccountPublic struct {
	ID            int64    `json:"id"`
	Email         string   `json:"email"`
	Provider      string   `json:"provider"`
	Name          string   `json:"name"`
	GivenName     string   `json:"given_name,omitempty"`
	FamilyName    string   `json:"family_name,omitempty"`
	Picture       string   `json:"picture,omitempty"`
	Locale        string   `json:"locale,omitempty"`
	Roles         []string `json:"roles"`
	Team          string   `json:"team,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	Skills        string   `json:"skills,omitempty"`
	CVURL         string   `json:"cv_url,omitempty"`
	EmailVerified bool     `json:"email_verified"`
}

// UpdateProfileRequest carries the self-maintained half of the account.
// Provider-sourced fields (name, picture, email) only move on login.
type UpdateProfileRequest struct {
	Bio    *string `json:"bio"`
	Skills *string `json:"skills"`
	CVURL  *string `json:"cv_url"`
	Team   *string `json:"team"`
}

func toAccountPublic(a *domain.Account) AccountPublic {
	roles := a.Roles
	if roles == nil {
		roles = []string{}
	}
	return AccountPublic{
		ID:            a.ID,
		Email:         a.Email,
		Provider:      string(a.Provider),
		Name:          a.Name,
		GivenName:     a.GivenName,
		FamilyName:    a.FamilyName,
		Picture:       a.Picture,
		Locale:        a.Locale,
		Roles:         roles,
		Team:          a.Team,
		Bio:           a.Bio,
		Skills:        a.Skills,
		CVURL:         a.CVURL,
		EmailVerified: a.EmailVerified,
	}
}

type AuthResponse struct {
	Account          AccountPublic `json:"account"`
	AccessToken      string        `json:"access_token"`
	RefreshToken     string        `json:"refresh_token"`
	ExpiresIn        int64         `json:"expires_in"`
	SessionExpiresAt int64         `json:"session_expires_at"`
}

type RefreshResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	SessionExpiresAt int64  `json:"session_expires_at"`
}
