// Package profile
package profile

import (
	"context"

	"perfil/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo domain.ProfileRepository
}

func NewService(repo domain.ProfileRepository) domain.ProfileService {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfileSnapshot, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ProfileSnapshot{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.ProfileUpdateRequest) error {
	user, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	user.Name = req.Name

	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			return domain.ErrInvalidCurrentPassword
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user.Password = string(hashed)
	}

	return s.repo.Update(ctx, user)
}
