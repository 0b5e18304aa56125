package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// accountMaintenanceService implements the AccountMaintenanceService interface
type accountMaintenanceService struct {
	profileRepo accounts.ProfileRepository
	authAdmin   accounts.AuthAdminConnector
	logger      logger.Logger
}

// NewAccountMaintenanceService creates a new accountMaintenanceService instance
func NewAccountMaintenanceService(profileRepo accounts.ProfileRepository, authAdmin accounts.AuthAdminConnector, logger logger.Logger) (accounts.AccountMaintenanceService, error) {
	return &accountMaintenanceService{
		profileRepo: profileRepo,
		authAdmin:   authAdmin,
		logger:      logger,
	}, nil
}

// FixMissingPasswords hashes one temporary password into every profile
// missing a hash. The password is hashed once and reused for every row, so
// every affected account gets the same temporary credential; the plaintext is
// returned once in the result and never logged.
func (s *accountMaintenanceService) FixMissingPasswords(ctx context.Context, opts accounts.FixOptions) (*accounts.FixResult, error) {
	profiles, err := s.profileRepo.ListMissingPasswordHash(ctx)
	if err != nil {
		return nil, err
	}

	result := &accounts.FixResult{Examined: len(profiles)}
	if len(profiles) == 0 {
		s.logger.Info("No profiles are missing a password hash")
		return result, nil
	}

	password := opts.TempPassword
	if password == "" {
		password, err = accounts.GenerateTempPassword()
		if err != nil {
			return nil, err
		}
	}

	if opts.DryRun {
		for _, profile := range profiles {
			s.logger.Info("Dry run: would set a temporary password for ", profile.Email)
		}
		return result, nil
	}

	hash, err := accounts.HashPassword(password)
	if err != nil {
		return nil, err
	}

	for _, profile := range profiles {
		if err := s.profileRepo.UpdatePasswordHash(ctx, profile.ID, hash); err != nil {
			result.Failed++
			s.logger.Error("Failed to set temporary password for ", profile.Email, ": ", err)
			continue
		}
		result.Updated++
	}

	result.Password = password
	s.logger.Info("Set a temporary password on ", result.Updated, " of ", result.Examined, " profiles (", result.Failed, " failed)")
	return result, nil
}

// ResetPassword sets a new password for one profile. The auth admin API is
// updated first; if the profiles row then fails to update the two stores
// disagree, which the returned error spells out so the operator re-runs.
func (s *accountMaintenanceService) ResetPassword(ctx context.Context, email, password string) error {
	hash, err := accounts.HashPassword(password)
	if err != nil {
		return err
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.authAdmin.UpdateUserPassword(ctx, profile.ID, password); err != nil {
		return fmt.Errorf("failed to update auth password for %s: %w", email, err)
	}

	if err := s.profileRepo.UpdatePasswordHash(ctx, profile.ID, hash); err != nil {
		return fmt.Errorf("auth password updated but profile update failed: %w", err)
	}

	// Read the row back and verify the stored hash accepts the new password,
	// so a silent write failure cannot masquerade as a successful reset.
	updated, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to verify password reset for %s: %w", email, err)
	}
	if err := accounts.VerifyPassword(updated.PasswordHash, password); err != nil {
		return fmt.Errorf("password reset for %s did not stick: %w", email, err)
	}

	s.logger.Info("Reset password for ", email)
	return nil
}

// CreateUser creates an auth user through the admin API and ensures a
// matching profiles row exists. When the profile is already present the auth
// user is still created and the existing row kept.
func (s *accountMaintenanceService) CreateUser(ctx context.Context, email, password, role string) (*accounts.AdminUser, error) {
	hash, err := accounts.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.authAdmin.CreateUser(ctx, email, password, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth user for %s: %w", email, err)
	}

	if _, err := s.profileRepo.GetByEmail(ctx, email); err == nil {
		s.logger.Info("Profile for ", email, " already exists, keeping it")
		return user, nil
	} else if !errors.Is(err, accounts.ErrProfileNotFound) {
		return user, fmt.Errorf("auth user created but profile lookup failed: %w", err)
	}

	profile := &accounts.Profile{
		ID:           user.ID,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return user, fmt.Errorf("auth user created but profile creation failed: %w", err)
	}

	s.logger.Info("Created user ", email, " with role ", role)
	return user, nil
}
