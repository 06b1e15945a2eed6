package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/yash-jivani/DevNetworks/internal/domain/user"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
)

type CurrentUserUseCase struct {
	userRepo user.Repository
}

func NewCurrentUserUseCase(repo user.Repository) *CurrentUserUseCase {
	return &CurrentUserUseCase{userRepo: repo}
}

type CurrentUserInput struct {
	UserID uuid.UUID
}

type CurrentUserOutput struct {
	User *user.User
}

func (uc *CurrentUserUseCase) Execute(ctx context.Context, input CurrentUserInput) (*CurrentUserOutput, error) {
	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// A token can outlive its user: there is no revocation.
			return nil, apperror.NewNotFound("User", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to query user", err)
	}
	return &CurrentUserOutput{User: u}, nil
}
