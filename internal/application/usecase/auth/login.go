package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yash-jivani/DevNetworks/internal/domain/user"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
	"github.com/yash-jivani/DevNetworks/pkg/auth"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		// Unknown email and wrong password must be indistinguishable.
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewUnauthorized("unknown email", nil)
		}
		return nil, apperror.NewInternal("failed to query user", err)
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, apperror.NewUnauthorized("incorrect password", nil)
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &LoginOutput{AccessToken: token}, nil
}
