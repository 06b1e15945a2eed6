package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yash-jivani/DevNetworks/internal/domain/event"
	"github.com/yash-jivani/DevNetworks/internal/domain/profile"
	"github.com/yash-jivani/DevNetworks/internal/domain/user"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

// ProfileUseCase loads, mutates in memory and persists the whole profile
// document. Concurrent mutations for the same user are last-write-wins;
// see the README for the known limitation.
type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	publisher   event.Publisher
	logger      logger.Logger
}

func NewProfileUseCase(pRepo profile.Repository, uRepo user.Repository, pub event.Publisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: pRepo,
		userRepo:    uRepo,
		publisher:   pub,
		logger:      log,
	}
}

func (uc *ProfileUseCase) publishProfileEvent(ctx context.Context, eventType string, userID uuid.UUID) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishProfileEvent(ctx, event.Message{
		Type:   eventType,
		UserID: userID.String(),
	}); err != nil {
		uc.logger.Warn("Failed to publish profile event",
			zap.String("type", eventType), zap.String("user_id", userID.String()), zap.Error(err))
	}
}

type UpsertProfileInput struct {
	UserID uuid.UUID
	Update profile.Update
}

type ProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpsert creates the profile when absent, otherwise merges only the
// fields present in the input. Idempotent for identical input.
func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertProfileInput) (*ProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			return nil, err
		}
		p = &profile.Profile{
			UserID:     input.UserID,
			Skills:     []string{},
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
		}
	}

	p.Apply(input.Update)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publishProfileEvent(ctx, event.TypeProfileUpdated, input.UserID)
	return &ProfileOutput{Profile: p}, nil
}

type GetProfileInput struct {
	UserID uuid.UUID
}

func (uc *ProfileUseCase) ExecuteGetMine(ctx context.Context, input GetProfileInput) (*ProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFoundMsg("There is no profile for this user")
		}
		return nil, err
	}
	return &ProfileOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) ExecuteGetByUserID(ctx context.Context, input GetProfileInput) (*ProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFoundMsg("Profile not found")
		}
		return nil, err
	}
	return &ProfileOutput{Profile: p}, nil
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteList(ctx context.Context) (*ListProfilesOutput, error) {
	profiles, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}

type DeleteAccountInput struct {
	UserID uuid.UUID
}

// ExecuteDeleteAccount removes the profile then the user. Not transactional:
// a failure between the two can leave a user without a profile, which is a
// legal state; the reverse is never observable outside that window.
func (uc *ProfileUseCase) ExecuteDeleteAccount(ctx context.Context, input DeleteAccountInput) error {
	if err := uc.profileRepo.Delete(ctx, input.UserID); err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		return err
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return apperror.NewInternal("failed to delete user", err)
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishAccountEvent(ctx, event.Message{
			Type:   event.TypeUserDeleted,
			UserID: input.UserID.String(),
		}); err != nil {
			uc.logger.Warn("Failed to publish account event",
				zap.String("type", event.TypeUserDeleted), zap.String("user_id", input.UserID.String()), zap.Error(err))
		}
	}
	return nil
}
