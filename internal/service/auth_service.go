package service

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// AuthService is the concrete identity collaborator: it verifies credentials
// and mints the token the middleware later resolves into an actor. Account
// provisioning and role assignment live outside this service.
type AuthService struct {
	accounts   AccountRepository
	jwtManager *auth.JWTManager
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewAuthService(accounts AccountRepository, jwtManager *auth.JWTManager, auditSvc *AuditService, log *zap.Logger) *AuthService {
	return &AuthService{accounts: accounts, jwtManager: jwtManager, auditSvc: auditSvc, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string, ip string) (*domain.TokenPair, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		// Use bcrypt dummy hash to prevent timing-based user enumeration.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt",
			zap.String("email", email),
			zap.String("ip", ip),
		)
		return nil, ErrInvalidCredentials
	}

	_ = s.accounts.TouchLastLogin(ctx, account.ID)

	claims := &domain.Claims{
		AccountID:       account.ID,
		Email:           account.Email,
		Role:            account.Role,
		DoctorProfileID: account.DoctorProfileID,
	}

	pair, err := s.jwtManager.GenerateTokenPair(claims)
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    account.ID,
		Role:         string(account.Role),
		Action:       "login",
		ResourceType: "account",
		ResourceID:   account.ID.String(),
		IPAddress:    ip,
	})

	return pair, nil
}

// RefreshToken issues a new access token given a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Re-validate the account is still active
	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil || !account.IsActive {
		return nil, ErrInvalidCredentials
	}

	updatedClaims := &domain.Claims{
		AccountID:       account.ID,
		Email:           account.Email,
		Role:            account.Role,
		DoctorProfileID: account.DoctorProfileID,
	}

	return s.jwtManager.GenerateTokenPair(updatedClaims)
}
