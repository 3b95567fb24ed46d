package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-api/internal/config"
	"library-api/internal/domains/auth/model"
	"library-api/pkg/jwt"
)

// ServiceInterface issues access tokens for the configured identity.
type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

type AuthService struct {
	username     string
	passwordHash []byte
	jwtManager   *jwt.Manager
}

// NewAuthService hashes the configured plain password once unless a hash is configured.
func NewAuthService(cfg config.AuthConfig, jwtManager *jwt.Manager) (*AuthService, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid AUTH_PASSWORD_HASH: %w", err)
	}

	return &AuthService{
		username:     cfg.Username,
		passwordHash: hash,
		jwtManager:   jwtManager,
	}, nil
}

// Login checks the pair against the configured credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	username, password := req.Username.Text, req.Password.Text
	userOK := req.Username.IsString && subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	// bcrypt ignores everything past MaxPasswordBytes, so a longer submission can never match exactly.
	passOK := false
	if req.Password.IsString && len(password) <= config.MaxPasswordBytes {
		err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
		if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("compare password: %w", err)
		}
		passOK = err == nil
	}
	if !userOK || !passOK {
		log.Warn().Str("username", username).Msg("[AuthService] login rejected")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(s.username)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{AccessToken: token}, nil
}
