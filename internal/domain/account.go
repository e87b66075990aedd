package domain

import "time"

type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderMicrosoft Provider = "microsoft"
)

const (
	RoleParticipant = "participant"
	RoleJudge       = "judge"
	RoleAdmin       = "admin"
)

// Account is a local identity record backed by an external provider identity.
// Accounts are never physically deleted: deactivation flips IsActive.
type Account struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	Email           string   `json:"email" gorm:"uniqueIndex;not null"`
	Provider        Provider `json:"provider" gorm:"size:32;uniqueIndex:idx_provider_subject;not null"`
	ProviderSubject string   `json:"-" gorm:"size:255;uniqueIndex:idx_provider_subject;not null"`

	Name       string `json:"name"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Picture    string `json:"picture,omitempty"`
	Locale     string `json:"locale,omitempty"`

	EmailVerified bool     `json:"email_verified"`
	IsActive      bool     `json:"is_active"`
	Roles         []string `json:"roles" gorm:"serializer:json"`
	Team          string   `json:"team,omitempty"`

	// Self-maintained profile, not sourced from the identity provider.
	Bio    string `json:"bio,omitempty" gorm:"type:text"`
	Skills string `json:"skills,omitempty"`
	CVURL  string `json:"cv_url,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

func (a *Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
