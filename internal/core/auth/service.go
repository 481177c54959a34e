// Package auth
package auth

import (
	"context"
	"errors"
	"time"

	"perfil/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.ProfileSnapshot `json:"user"`
	AccessToken string                  `json:"access_token"`
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type service struct {
	repo        domain.ProfileRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
}

func NewService(repo domain.ProfileRepository, secret string, expiry time.Duration) AuthService {
	return &service{
		repo:        repo,
		jwtSecret:   []byte(secret),
		tokenExpiry: expiry,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid username or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return nil, errors.New("invalid username or password")
	}

	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: tokenString,
		User: &domain.ProfileSnapshot{
			ID:       user.ID,
			Name:     user.Name,
			Username: user.Username,
		},
	}, nil
}
