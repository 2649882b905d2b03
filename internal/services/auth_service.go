package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"jobmatch_backend/internal/auth"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/services/dto"
	"jobmatch_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	jwtSecret   string
	jwtTTL      time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	jwtSecret string,
	jwtTTLMinutes int,
) AuthService {
	if jwtTTLMinutes <= 0 {
		jwtTTLMinutes = 60
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtSecret:   jwtSecret,
		jwtTTL:      time.Duration(jwtTTLMinutes) * time.Minute,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}
	if req.Role != models.UserRoleStudent && req.Role != models.UserRoleEmployer {
		return apperrors.ErrInvalidOperation("auth", "Invalid role for registration")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.ErrDatabase(err, "auth")
	}

	switch req.Role {
	case models.UserRoleStudent:
		profile := &models.StudentProfile{
			UserID:   user.ID,
			Name:     req.Name,
			Location: req.Location,
		}
		if err := s.profileRepo.CreateStudentProfile(ctx, profile); err != nil {
			return apperrors.ErrDatabase(err, "profile")
		}
	case models.UserRoleEmployer:
		profile := &models.EmployerProfile{
			UserID:      user.ID,
			CompanyName: req.CompanyName,
			City:        req.Location,
		}
		if err := s.profileRepo.CreateEmployerProfile(ctx, profile); err != nil {
			return apperrors.ErrDatabase(err, "profile")
		}
	}

	return nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrDatabase(err, "auth")
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended || user.Status == models.UserStatusBanned {
		return nil, apperrors.NewForbiddenError("Account is not allowed to sign in")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		// An expired token being replayed invalidates the whole session.
		_ = s.userRepo.DeleteUserRefreshTokens(ctx, stored.UserID)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: one refresh token, one use.
	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, apperrors.ErrDatabase(err, "auth")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return apperrors.ErrDatabase(err, "auth")
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	access, expiresAt, err := auth.GenerateToken(s.jwtSecret, user.ID, string(user.Role), s.jwtTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := generateRandomToken()
	rt := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, rt); err != nil {
		return nil, apperrors.ErrDatabase(err, "auth")
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		UserID:       user.ID,
		Role:         user.Role,
	}, nil
}

func generateRandomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
