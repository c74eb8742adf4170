package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/repository"
	"library-catalog/pkg/jwt"
)

const (
	bcryptCost = 12

	// Every new account starts as a viewer and gains more through
	// role administration.
	defaultRole = "viewers"
)

type UserService struct {
	repo    repository.RepositoryInterface
	jwt     *jwt.Manager
	storage ObjectStorage
	roles   RoleAssigner
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager, storage ObjectStorage, roles RoleAssigner) ServiceInterface {
	return &UserService{
		repo:    repo,
		jwt:     jwtManager,
		storage: storage,
		roles:   roles,
	}
}

// Register creates an account, grants the default role and issues tokens
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password error: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		DateOfBirth:  req.ParsedDateOfBirth(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.roles.AssignRole(ctx, user.ID, defaultRole); err != nil {
		// The account exists; a missing default role only limits it
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Default role assignment failed")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{User: user.ToResponse(), Tokens: *tokens}, nil
}

// Login verifies credentials and issues tokens
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// Same response for unknown email and wrong password
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, model.ErrUserInactive
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{User: user.ToResponse(), Tokens: *tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *UserService) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	// The account must still exist and be active
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, model.ErrUserInactive
	}

	return s.issueTokens(user)
}

// GetProfile returns the authenticated user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// UpdateProfile applies the fields present in the request
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			user.DateOfBirth = nil
		} else {
			dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return nil, fmt.Errorf("parse date_of_birth error: %w", err)
			}
			user.DateOfBirth = &dob
		}
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// ChangePassword verifies the current password before storing a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return model.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password error: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// UploadProfilePhoto stores the photo and records its URL on the profile
func (s *UserService) UploadProfilePhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("profiles/%s%s", userID, extensionFor(contentType))
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload profile photo error: %w", err)
	}

	user.ProfilePhotoURL = &url
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// ListUsers returns a page of accounts for administration
func (s *UserService) ListUsers(ctx context.Context, req *model.ListUsersRequest) ([]model.UserResponse, int, error) {
	users, total, err := s.repo.ListUsers(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("list users error: %w", err)
	}

	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, total, nil
}

// ============ HELPER METHODS ============

func (s *UserService) issueTokens(user *model.User) (*model.TokenResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token error: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token error: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.jwt.AccessExpiry().Seconds()),
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
