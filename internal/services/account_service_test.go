package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	dbm "tripnect/internal/models/db_models"
	"tripnect/internal/models/request_models"
	"tripnect/pkg/utils"
)

func newAccountService(repo *mockAccountRepo) (AccountServiceInterface, *utils.JWTManager) {
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	return NewAccountService(repo, jwt, nil), jwt
}

func TestAccountService_Register(t *testing.T) {
	repo := &mockAccountRepo{}
	repo.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, nil)
	repo.On("InsertTx", mock.Anything, mock.MatchedBy(func(a *dbm.Account) bool {
		return a.Email == "asha@example.com" && a.Name == "Asha" && a.PasswordHash != "secret1"
	})).Return(nil)
	svc, _ := newAccountService(repo)

	user, err := svc.Register(context.Background(), request_models.RegisterRequest{
		Name: " Asha ", Email: "  Asha@Example.com ", Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "Asha", user.Name)
	repo.AssertExpectations(t)
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	repo := &mockAccountRepo{}
	repo.On("FindByEmail", mock.Anything, "asha@example.com").Return(&dbm.Account{Email: "asha@example.com"}, nil)
	svc, _ := newAccountService(repo)

	_, err := svc.Register(context.Background(), request_models.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "InsertTx", mock.Anything, mock.Anything)
}

func TestAccountService_Login(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	account := &dbm.Account{Name: "Asha", Email: "asha@example.com", PasswordHash: hash}
	account.ID = uuid.New()

	repo := &mockAccountRepo{}
	repo.On("FindByEmail", mock.Anything, "asha@example.com").Return(account, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
	svc, jwt := newAccountService(repo)

	out, err := svc.Login(context.Background(), request_models.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	claims, err := jwt.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.UserID)
	assert.Equal(t, account.ID.String(), out.User.ID)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAccountService_Verify(t *testing.T) {
	known, unknown, broken := uuid.New(), uuid.New(), uuid.New()
	repo := &mockAccountRepo{}
	repo.On("FindById", mock.Anything, known).Return(&dbm.Account{Name: "Ravi", Email: "ravi@example.com"}, nil)
	repo.On("FindById", mock.Anything, unknown).Return(nil, nil)
	repo.On("FindById", mock.Anything, broken).Return(nil, errors.New("conn reset"))
	svc, _ := newAccountService(repo)

	user, err := svc.Verify(context.Background(), known)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)

	_, err = svc.Verify(context.Background(), unknown)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)

	_, err = svc.Verify(context.Background(), broken)
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}
