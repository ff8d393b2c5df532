package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/retry"
	"agrirent-backend/internal/security"

	"github.com/google/uuid"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes and rejects it outright.
	maxPasswordLength = 72
)

type authService struct {
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
	tokens      security.TokenManager
	revoked     *security.RevocationList
	readBack    retry.Policy
}

func NewAuthService(accountRepo repository.AccountRepository, profileRepo repository.ProfileRepository, tokens security.TokenManager) AuthService {
	return &authService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		revoked:     security.NewRevocationList(),
		readBack:    retry.DefaultPolicy,
	}
}

// validateSignUp runs the form checks. No store call happens before it passes.
func validateSignUp(in *SignUpInput) error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.FullName == "" {
		return domain.NewValidationError("full_name", "Full name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return domain.NewValidationError("email", "A valid email is required")
	}
	if in.Password != in.ConfirmPassword {
		return domain.NewValidationError("confirm_password", "Passwords do not match")
	}
	if len(in.Password) < minPasswordLength {
		return domain.NewValidationError("password", "Password must be at least 6 characters")
	}
	if len(in.Password) > maxPasswordLength {
		return domain.NewValidationError("password", "Password must be at most 72 characters")
	}
	if !in.Role.Valid() {
		return domain.NewValidationError("role", "Invalid role")
	}
	return nil
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*domain.Profile, error) {
	if !in.Role.SelfAssignable() {
		return nil, domain.NewValidationError("role", "Invalid role")
	}
	return s.createUser(ctx, in)
}

func (s *authService) ProvisionUser(ctx context.Context, in SignUpInput) (*domain.Profile, error) {
	if in.ConfirmPassword == "" {
		in.ConfirmPassword = in.Password
	}
	return s.createUser(ctx, in)
}

func (s *authService) createUser(ctx context.Context, in SignUpInput) (*domain.Profile, error) {
	if err := validateSignUp(&in); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
	}
	profile := &domain.Profile{
		FullName: in.FullName,
		Email:    in.Email,
		Role:     in.Role,
		Phone:    in.Phone,
	}
	switch in.Role {
	case domain.RoleFarmer:
		profile.FarmName = in.FarmName
		profile.FarmSizeAcres = in.FarmSizeAcres
		profile.FarmLocation = in.FarmLocation
		profile.CropTypes = in.CropTypes
	case domain.RoleOwner:
		profile.BusinessName = in.BusinessName
		profile.PropertyAddress = in.PropertyAddress
		profile.EquipmentCount = in.EquipmentCount
		profile.ServiceArea = in.ServiceArea
	}

	if err := s.accountRepo.CreateWithProfile(ctx, account, profile); err != nil {
		return nil, err
	}
	logger.Info("account created", "user_id", account.ID, "role", profile.Role)
	return profile, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	account, err := s.accountRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := s.GetProfileWithRetry(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	token, expiresAt, err := s.tokens.IssueSession(account.ID, account.Email, profile.Role)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Token: token, ExpiresAt: expiresAt, Profile: profile}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*security.SessionClaims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.revoked.Check(claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// SignOut revokes token for the rest of its lifetime. Invalid tokens are
// already unusable and are ignored.
func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	if claims.ExpiresAt == nil || claims.ID == "" {
		return fmt.Errorf("sign out: token has no id or expiry")
	}
	s.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	logger.Info("session revoked", "user_id", claims.UserID)
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

func (s *authService) GetProfileWithRetry(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile *domain.Profile
	err := retry.Do(ctx, s.readBack, func(ctx context.Context) error {
		p, err := s.profileRepo.GetByID(ctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("profile read failed, retrying", "user_id", userID, "error", err)
			}
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
