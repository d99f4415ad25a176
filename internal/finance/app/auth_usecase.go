package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
	"fintrack/internal/finance/domain/services"
	"fintrack/internal/finance/ports/api"
	"fintrack/internal/finance/ports/repositories"
	svc "fintrack/internal/finance/ports/services"
	"fintrack/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	msgStartRegistration  = "starting user registration"
	msgInvalidCredentials = "invalid registration data"
	msgEmailExists        = "user with this email already exists"
	msgUsernameExists     = "user with this username already exists"
	msgIdentityConflict   = "store reported a conflicting user"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgInvalidPassword    = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrIssueToken        = "failed to issue token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingCredentials = "validating credentials"
	errCtxCheckingUser          = "checking existing user"
	errCtxHashingPassword       = "hashing password"
	errCtxCreatingUser          = "creating user"
	errCtxIssuingToken          = "issuing token"
	errCtxFindingUser           = "finding user"
	errCtxVerifyingPassword     = "verifying password"

	// dummyPassword хэшируется один раз и сравнивается при входе с неизвестным email.
	dummyPassword = "fintrack-timing-equaliser"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService

	dummyOnce sync.Once
	dummyHash string
}

var _ api.AuthUseCase = (*AuthUseCaseImpl)(nil)

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) *AuthUseCaseImpl {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя и выпускает для него токен.
func (a *AuthUseCaseImpl) Register(ctx context.Context, username, email, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))
	log.Debug(ctx, msgStartRegistration)

	creds, err := entities.NewCredentials(username, email, password)
	if err != nil {
		log.Debug(ctx, msgInvalidCredentials, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingCredentials, err)
	}

	existingUser, err := a.userRepo.FindByEmailOrUsername(ctx, creds.Email, creds.Username)
	if err != nil {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		switch {
		case entities.NormalizeEmail(existingUser.Email) == creds.Email:
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, entities.ErrEmailTaken)
		case entities.SameUsername(existingUser.Username, creds.Username):
			log.Debug(ctx, msgUsernameExists)
			return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, entities.ErrUsernameTaken)
		default:
			// хранилище нашло совпадение, которое не видно после нормализации
			log.Warn(ctx, msgIdentityConflict, zap.String("userID", existingUser.ID))
			return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, apperr.ErrDuplicateIdentity)
		}
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, creds.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	session, err := a.newSession(ctx, createdUser)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return session, nil
}

// Login проверяет email и пароль и выпускает токен.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	log.Debug(ctx, msgLoginAttempt)

	email = entities.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, services.ErrLoginFieldsRequired
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			a.equaliseTiming(ctx, password)
			return nil, services.ErrInvalidCredentials
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.String("userID", user.ID))
		return nil, services.ErrInvalidCredentials
	}

	session, err := a.newSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return session, nil
}

func (a *AuthUseCaseImpl) newSession(ctx context.Context, user *entities.User) (*services.Session, error) {
	token, expiresAt, err := a.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrTokenGenerationFail, err)
	}

	identity := *user
	identity.PasswordHash = ""

	return &services.Session{
		User:      &identity,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// equaliseTiming выполняет сравнение с фиктивным хэшем, чтобы время ответа
// для неизвестного email не отличалось от неверного пароля.
func (a *AuthUseCaseImpl) equaliseTiming(ctx context.Context, password string) {
	a.dummyOnce.Do(func() {
		hash, err := a.passwordSvc.Hash(ctx, dummyPassword)
		if err == nil {
			a.dummyHash = hash
		}
	})
	if a.dummyHash == "" {
		return
	}
	_, _ = a.passwordSvc.Verify(ctx, password, a.dummyHash)
}
