package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/pkg/kvstore"
	"github.com/yab-g4u/Ablack/pkg/logger"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

// ErrInvalidCredentials deliberately does not distinguish a missing
// account from a wrong password.
var ErrInvalidCredentials = errors.New("Invalid email or password")

const (
	resetTokenPrefix = "pwreset:"
	resetTokenTTL    = time.Hour

	visitedPrefix = "hasVisited:"
)

type AuthUsecase struct {
	userRepo           domain.UserRepository
	txManager          domain.TransactionManager
	kv                 kvstore.Store
	frontendURL        string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, txManager domain.TransactionManager, kv kvstore.Store, frontendURL string, atExpiry, rtExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo:           userRepo,
		txManager:          txManager,
		kv:                 kv,
		frontendURL:        frontendURL,
		accessTokenExpiry:  atExpiry,
		refreshTokenExpiry: rtExpiry,
	}
}

// AuthResult is what every successful sign-in/sign-up returns.
type AuthResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

// SignUp creates the account and its profile atomically, then signs the
// new user in.
func (u *AuthUsecase) SignUp(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	if len(password) < 6 {
		return nil, errors.New("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "customer",
	}

	err = u.txManager.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return u.userRepo.CreateProfile(ctx, &domain.Profile{
			ID:       user.ID,
			FullName: fullName,
		})
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, errors.New("An account with this email already exists")
	}
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("sign up failed")
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("user created")
	return u.issueTokens(ctx, user)
}

// SignIn verifies the password and issues a fresh token pair.
func (u *AuthUsecase) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user)
}

// SignOut revokes the refresh token; the access token simply expires.
func (u *AuthUsecase) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return u.userRepo.RevokeRefreshToken(ctx, refreshToken)
}

// Refresh rotates the refresh token and issues a new access token.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	stored, err := u.userRepo.GetRefreshToken(ctx, refreshToken)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errors.New("invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}

	user, err := u.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user)
}

// Me returns the account together with its profile.
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := u.userRepo.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		profile = &domain.Profile{ID: userID}
		err = nil
	}
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return u.userRepo.GetProfile(ctx, userID)
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	return u.userRepo.UpdateProfile(ctx, profile)
}

// RequestPasswordReset issues a short-lived reset token. The reset link
// is logged; mail delivery is a deployment concern.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		// Do not reveal whether the account exists.
		return nil
	}
	if err != nil {
		return err
	}

	token := utils.GenerateUUID()
	if err := u.kv.Set(ctx, resetTokenPrefix+token, []byte(user.ID), resetTokenTTL); err != nil {
		return err
	}

	logger.Info().
		Str("user_id", user.ID).
		Str("link", fmt.Sprintf("%s/reset-password?token=%s", u.frontendURL, token)).
		Msg("password reset requested")
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (u *AuthUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("Password must be at least 6 characters")
	}

	raw, err := u.kv.Get(ctx, resetTokenPrefix+token)
	if errors.Is(err, kvstore.ErrNotFound) {
		return errors.New("invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.userRepo.UpdatePassword(ctx, string(raw), string(hash)); err != nil {
		return err
	}
	return u.kv.Delete(ctx, resetTokenPrefix+token)
}

// ShouldShowAuthGate reports whether this client sees the one-time
// sign-in prompt, and marks the visit. The compare-and-swap guarantees
// exactly one caller per client gets true even under concurrent loads.
func (u *AuthUsecase) ShouldShowAuthGate(ctx context.Context, clientID string) bool {
	first, err := u.kv.CompareAndSwap(ctx, visitedPrefix+clientID, nil, []byte("1"), 0)
	if err != nil {
		logger.Warn().Err(err).Msg("visit marker write failed")
		return false
	}
	return first
}

func (u *AuthUsecase) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	access, err := utils.GenerateJWT(user.ID, user.Email, user.Role, u.accessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := &domain.RefreshToken{
		Token:     utils.GenerateUUID(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.refreshTokenExpiry),
	}
	if err := u.userRepo.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		User:         user,
	}, nil
}
