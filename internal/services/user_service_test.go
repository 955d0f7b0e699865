package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
)

func newUser(email string) *domain.User {
	return &domain.User{
		FirstName: "María",
		LastName:  "Lopez",
		Email:     email,
		Password:  "secreto123",
		District:  "Miraflores",
	}
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	req := require.New(t)
	service := NewUserService(repository.NewUserRepository(testDB(t)))
	ctx := context.Background()

	u := newUser("maria@example.com")
	req.NoError(service.Create(ctx, u))
	req.NotEqual("secreto123", u.Password)
	req.NoError(bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secreto123")))
}

func TestUserService_CreateValidation(t *testing.T) {
	req := require.New(t)
	service := NewUserService(repository.NewUserRepository(testDB(t)))
	ctx := context.Background()

	req.ErrorIs(service.Create(ctx, &domain.User{Email: "a@b.c"}), alerta_errors.ErrInvalidInput)
	req.ErrorIs(service.Create(ctx, &domain.User{Password: "x"}), alerta_errors.ErrInvalidInput)

	req.NoError(service.Create(ctx, newUser("dup@example.com")))
	req.ErrorIs(service.Create(ctx, newUser("dup@example.com")), alerta_errors.ErrAlreadyExists)
}

func TestUserService_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	req := require.New(t)
	service := NewUserService(repository.NewUserRepository(testDB(t)))
	ctx := context.Background()

	u := newUser("ana@example.com")
	req.NoError(service.Create(ctx, u))
	hashed := u.Password

	u.District = "Surco"
	u.Password = ""
	updated, err := service.Update(ctx, *u)
	req.NoError(err)
	req.Equal("Surco", updated.District)
	req.Equal(hashed, updated.Password)

	// A non-blank password is re-hashed
	u.Password = "nuevo456"
	updated, err = service.Update(ctx, *u)
	req.NoError(err)
	req.NotEqual(hashed, updated.Password)
	req.NoError(bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("nuevo456")))
}

func TestUserService_FindUserNameByID(t *testing.T) {
	req := require.New(t)
	service := NewUserService(repository.NewUserRepository(testDB(t)))
	ctx := context.Background()

	u := newUser("jose@example.com")
	u.FirstName = "José"
	u.LastName = "Quispe"
	req.NoError(service.Create(ctx, u))

	name, err := service.FindUserNameByID(ctx, u.ID)
	req.NoError(err)
	req.Equal("José Quispe", name)

	_, err = service.FindUserNameByID(ctx, uuid.New())
	req.ErrorIs(err, alerta_errors.ErrNotFound)
}
