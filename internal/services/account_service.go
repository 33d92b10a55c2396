package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/models/request_models"
	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/internal/repositories"
	mem "apnadoctor/pkg/memcache"
	"apnadoctor/pkg/utils"
)

// ClientInfo is what we record about the caller on login and consent.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*resp.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest, client ClientInfo) (*resp.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*resp.AccountResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*resp.AccountResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, request request_models.ChangePasswordRequest) error
	Logout(token string) error
	CreateAdmin(ctx context.Context, request request_models.CreateAdminRequest) (*resp.AuthResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	jwt         *utils.JWTManager
	revoked     mem.RevokedTokenStore
	adminSecret string
	log         *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	revoked mem.RevokedTokenStore,
	adminSecret string,
	log *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		jwt:         jwt,
		revoked:     revoked,
		adminSecret: adminSecret,
		log:         log.Named("account"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*resp.AuthResponse, error) {
	email := normalizeEmail(request.Email)

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{
		FullName:           strings.TrimSpace(request.FullName),
		Email:              email,
		PasswordHash:       hashedPassword,
		EmailNotifications: true,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("account registered", zap.String("account_id", account.ID.String()))
	return a.authResponse(account)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest, client ClientInfo) (*resp.AuthResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	event := &db_models.LoginEvent{
		AccountID: account.ID,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
	}
	if err := a.accountRepo.RecordLogin(ctx, event); err != nil {
		a.log.Warn("record login event", zap.Error(err))
	}

	a.log.Debug("login completed", zap.Duration("took", time.Since(startTime)))
	return a.authResponse(account)
}

func (a *AccountService) Me(ctx context.Context, userID uuid.UUID) (*resp.AccountResponse, error) {
	account, err := a.mustFind(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := resp.NewAccountResponse(account)
	return &out, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*resp.AccountResponse, error) {
	account, err := a.mustFind(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfilePatch(account, request)

	if err := a.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := resp.NewAccountResponse(account)
	return &out, nil
}

func applyProfilePatch(account *db_models.Account, p request_models.UpdateProfileRequest) {
	if p.FullName != nil {
		account.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.Age != nil {
		account.Age = *p.Age
	}
	if p.Gender != nil {
		account.Gender = *p.Gender
	}
	if p.Height != nil {
		account.Height = *p.Height
	}
	if p.Weight != nil {
		account.Weight = *p.Weight
	}
	if p.BloodType != nil {
		account.BloodType = *p.BloodType
	}
	if p.HealthGoals != nil {
		account.HealthGoals = pq.StringArray(*p.HealthGoals)
	}
	if p.PhoneNumber != nil {
		account.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
	}
	if p.FCMToken != nil {
		account.FCMToken = *p.FCMToken
	}
	if p.EmailNotifications != nil {
		account.EmailNotifications = *p.EmailNotifications
	}
	if p.SMSNotifications != nil {
		account.SMSNotifications = *p.SMSNotifications
	}
	if p.PushNotifications != nil {
		account.PushNotifications = *p.PushNotifications
	}
}

func (a *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, request request_models.ChangePasswordRequest) error {
	account, err := a.mustFind(ctx, userID)
	if err != nil {
		return err
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.CurrentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hashed

	if err := a.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (a *AccountService) Logout(token string) error {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return utils.ErrUnauthorized
	}
	until := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	a.revoked.Revoke(token, until)
	return nil
}

func (a *AccountService) CreateAdmin(ctx context.Context, request request_models.CreateAdminRequest) (*resp.AuthResponse, error) {
	if a.adminSecret == "" || request.AdminSecret != a.adminSecret {
		return nil, utils.ErrInvalidAdminSecret
	}

	email := normalizeEmail(request.Email)
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if account != nil {
		account.IsAdmin = true
		if err := a.accountRepo.Update(ctx, account); err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		a.log.Info("account promoted to admin", zap.String("account_id", account.ID.String()))
		return a.authResponse(account)
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account = &db_models.Account{
		FullName:           strings.TrimSpace(request.FullName),
		Email:              email,
		PasswordHash:       hashed,
		IsAdmin:            true,
		EmailNotifications: true,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	a.log.Info("admin account created", zap.String("account_id", account.ID.String()))
	return a.authResponse(account)
}

func (a *AccountService) mustFind(ctx context.Context, userID uuid.UUID) (*db_models.Account, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func (a *AccountService) authResponse(account *db_models.Account) (*resp.AuthResponse, error) {
	token, err := a.jwt.CreateToken(account.ID, account.Role())
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &resp.AuthResponse{
		Token: token,
		User:  resp.NewAccountResponse(account),
	}, nil
}
