package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Create(ctx context.Context, u *domain.User) error {
	if u.Email == "" || u.Password == "" {
		return alerta_errors.ErrInvalidInput
	}

	if _, err := s.userRepo.GetByEmail(ctx, u.Email); err == nil {
		return alerta_errors.ErrAlreadyExists
	} else if !errors.Is(err, alerta_errors.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)

	// The existence check above is advisory; the unique index on email
	// is what actually closes the race.
	return s.userRepo.Create(ctx, u)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *UserService) Update(ctx context.Context, u domain.User) (domain.User, error) {
	existing, err := s.userRepo.GetByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	// Password changes go through Create-style hashing; a blank password
	// in an update means "keep the current one".
	if u.Password == "" {
		u.Password = existing.Password
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		u.Password = string(hash)
	}
	u.CreatedAt = existing.CreatedAt
	if err := s.userRepo.Update(ctx, u); err != nil {
		return domain.User{}, err
	}
	return s.userRepo.GetByID(ctx, u.ID)
}

// FindUserNameByID resolves the sender display name denormalized onto
// messages at send time. Later renames do not rewrite past messages.
func (s *UserService) FindUserNameByID(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.FullName(), nil
}
