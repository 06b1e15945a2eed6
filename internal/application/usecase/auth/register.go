package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yash-jivani/DevNetworks/internal/domain/event"
	"github.com/yash-jivani/DevNetworks/internal/domain/user"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
	"github.com/yash-jivani/DevNetworks/pkg/auth"
	"github.com/yash-jivani/DevNetworks/pkg/gravatar"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

type RegisterUseCase struct {
	userRepo  user.Repository
	jwtSvc    *auth.JWTService
	publisher event.Publisher
	logger    logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, pub event.Publisher, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  repo,
		jwtSvc:    jwtSvc,
		publisher: pub,
		logger:    log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	AccessToken string
	User        *user.User
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {

	// Exact-match lookup: email uniqueness is case-sensitive here.
	existing, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, apperror.NewInternal("failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperror.NewAppError(apperror.ErrConflict, "User already exists", "email is already registered", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		AvatarURL:    gravatar.URL(input.Email),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailConflict) {
			return nil, apperror.NewAppError(apperror.ErrConflict, "User already exists", "email is already registered", err)
		}
		return nil, apperror.NewInternal("failed to persist user", err)
	}

	// Token issuance is a separate step: if it fails the user record stays
	// and the client can still log in.
	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token after registration", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishAccountEvent(ctx, event.Message{
			Type:   event.TypeUserRegistered,
			UserID: u.ID.String(),
		}); err != nil {
			uc.logger.Warn("Failed to publish user.registered event", zap.String("user_id", u.ID.String()), zap.Error(err))
		}
	}

	return &RegisterOutput{AccessToken: token, User: u}, nil
}
