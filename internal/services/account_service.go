package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tripnect/internal/models/db_models"
	"tripnect/internal/models/request_models"
	resp "tripnect/internal/models/response_models"
	"tripnect/internal/repositories"
	"tripnect/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*resp.LoginResponse, error)
	Register(ctx context.Context, request request_models.RegisterRequest) (*resp.UserResponse, error)
	Verify(ctx context.Context, userID uuid.UUID) (*resp.UserResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	jwt         *utils.JWTManager
	logger      *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, jwt *utils.JWTManager, logger *zap.Logger) AccountServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accountRepo: accountRepo,
		jwt:         jwt,
		logger:      logger.Named("account"),
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*resp.LoginResponse, error) {
	startTime := time.Now()
	email := normalizeEmail(request.Email)

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.jwt.CreateToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	a.logger.Info("login succeeded",
		zap.String("user_id", account.ID.String()),
		zap.Duration("elapsed", time.Since(startTime)))

	return &resp.LoginResponse{Token: token, User: userResponse(account)}, nil
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*resp.UserResponse, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.Name),
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := a.accountRepo.InsertTx(ctx, newAccount); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.logger.Info("account registered", zap.String("user_id", newAccount.ID.String()))
	user := userResponse(newAccount)
	return &user, nil
}

func (a *AccountService) Verify(ctx context.Context, userID uuid.UUID) (*resp.UserResponse, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	user := userResponse(account)
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userResponse(a *db_models.Account) resp.UserResponse {
	return resp.UserResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: utils.FormatRFC3339(utils.FromUnixSeconds(a.CreatedAt)),
	}
}
