package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/logger"
	"impactolocal-backend/internal/repository"
	"impactolocal-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	profileRepo  repository.ProfileRepository
	tokenManager security.TokenManager
}

func NewAuthService(profileRepo repository.ProfileRepository, tokenManager security.TokenManager) AuthService {
	return &authService{profileRepo: profileRepo, tokenManager: tokenManager}
}

func (s *authService) Signup(ctx context.Context, email, password, name string, role domain.Role) (*domain.Profile, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.profileRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", errors.New("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	profile := &domain.Profile{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, "", "", err
	}
	logger.Info("Profile created", "profile_id", profile.ID, "role", role)

	access, refresh, err := s.issueTokensPair(profile)
	if err != nil {
		return nil, "", "", err
	}
	return profile, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokensPair(profile)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	profile, err := s.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokensPair(profile)
}

func (s *authService) issueTokensPair(profile *domain.Profile) (string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(profile.ID, profile.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
