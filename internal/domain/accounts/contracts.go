package accounts

import (
	"context"
)

// AccountMaintenanceService defines methods for password maintenance and
// admin user management against the profiles table and the auth admin API.
type AccountMaintenanceService interface {
	// FixMissingPasswords hashes one temporary password into every profile
	// missing a password hash, row by row. Row failures are counted and the
	// run continues. Re-running with a fixed password re-hashes it; random
	// mode generates a fresh password per run.
	FixMissingPasswords(ctx context.Context, opts FixOptions) (*FixResult, error)

	// ResetPassword sets a new password for a single profile, both in the
	// profiles table and through the auth admin API so logins agree.
	ResetPassword(ctx context.Context, email, password string) error

	// CreateUser creates an auth user through the admin API and ensures a
	// matching profiles row exists.
	CreateUser(ctx context.Context, email, password, role string) (*AdminUser, error)
}

// ProfileRepository defines the interface for profiles table operations.
type ProfileRepository interface {
	ListMissingPasswordHash(ctx context.Context) ([]*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	UpdatePasswordHash(ctx context.Context, profileID, hash string) error
}

// AuthAdminConnector is an interface for the managed platform's auth admin
// API. Calls carry the service role key and bypass row level security, so
// implementations must only ever run server-side.
type AuthAdminConnector interface {
	// CreateUser creates a confirmed auth user with the given credentials and
	// role claim.
	CreateUser(ctx context.Context, email, password, role string) (*AdminUser, error)

	// UpdateUserPassword sets a new password for the auth user with the given
	// id.
	UpdateUserPassword(ctx context.Context, userID, password string) error
}
