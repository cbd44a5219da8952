package service

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"tripplanner.app/config"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// AuthService handles account registration, login, and token validation
type AuthService struct {
	userRepo  UserRepositoryInterface
	tokenRepo TokenRepositoryInterface
	authCfg   config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepositoryInterface, tokenRepo TokenRepositoryInterface, authCfg config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		authCfg:   authCfg,
	}
}

// Register creates an account and issues its first token. Email and username
// must both be unused.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	log.Printf("[DEBUG] AuthService.Register: email=%s\n", req.Email)

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAlreadyExistsError("email is already registered")
	}

	existing, err = s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAlreadyExistsError("username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.authCfg.BcryptCost)
	if err != nil {
		return nil, apperrors.NewValidationError("failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login checks credentials and issues a fresh token. Unknown emails and bad
// passwords return the same error so the response does not leak which one
// was wrong.
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	log.Printf("[DEBUG] AuthService.Login: email=%s\n", req.Email)

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewTokenError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewTokenError("invalid credentials")
	}

	return s.issueToken(user)
}

// Authenticate resolves a bearer token to its user
func (s *AuthService) Authenticate(tokenStr string) (*models.User, error) {
	token, err := s.tokenRepo.FindValidToken(tokenStr)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.NewTokenError("token does not belong to an active account")
	}
	return user, nil
}

// CleanupExpiredTokens drops tokens past their expiry. Called by the
// background scheduler.
func (s *AuthService) CleanupExpiredTokens() error {
	return s.tokenRepo.DeleteExpiredTokens()
}

func (s *AuthService) issueToken(user *models.User) (*models.AuthResponse, error) {
	ttl := time.Duration(s.authCfg.TokenTTLHours) * time.Hour
	token, err := s.tokenRepo.CreateToken(user.ID, ttl)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token: token.Token,
		User:  *user,
	}, nil
}
