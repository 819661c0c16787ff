package entity

import "time"

// Account is a platform account. Emails are the primary identity.
type Account struct {
	ID        ID
	Email     string
	FirstName string
	LastName  string
	TeamName  string
	Roles     []RoleGroup
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Account) Principal() *Principal {
	return &Principal{ID: a.ID, Email: a.Email, Roles: a.Roles}
}

// AuthTokenTTL is how long a bearer token stays valid after issue.
const AuthTokenTTL = 30 * 24 * time.Hour

// AuthToken is a long-term bearer credential for an account.
type AuthToken struct {
	ID        ID
	AccountID ID
	Token     string
	Active    bool
	CreatedAt time.Time
}

func (t *AuthToken) ValidUntil() time.Time {
	return t.CreatedAt.Add(AuthTokenTTL)
}

func (t *AuthToken) IsValid(now time.Time) bool {
	return t.Active && !now.After(t.ValidUntil())
}
