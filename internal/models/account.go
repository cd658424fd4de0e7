package models

// Account roles. Role is resolved from the store on every privileged
// request, never from a token claim.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Account represents a registered identity.
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	ID string `json:"id"`

	// Email is the account's identity (unique).
	Email string `json:"email"`

	// Name is the display name of the account holder.
	Name string `json:"name"`

	// Role is either RoleMember or RoleAdmin.
	Role string `json:"role"`

	// PasswordHash is the bcrypt hash of the account's password.
	// Empty for accounts created through the idempotent upsert path.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
