package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yash-jivani/DevNetworks/internal/domain/event"
	"github.com/yash-jivani/DevNetworks/internal/domain/profile"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
)

type AddExperienceInput struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// ExecuteAddExperience assigns a fresh entry id and inserts at the head of
// the sequence. There is no auto-create: a missing profile is an error.
func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input AddExperienceInput) (*ProfileOutput, error) {
	p, err := uc.loadForMutation(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(profile.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publishProfileEvent(ctx, event.TypeExperienceAdded, input.UserID)
	return &ProfileOutput{Profile: p}, nil
}

type RemoveEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// ExecuteRemoveExperience removes the entry with the given id. An unknown id
// leaves the sequence untouched and still returns the profile.
func (uc *ProfileUseCase) ExecuteRemoveExperience(ctx context.Context, input RemoveEntryInput) (*ProfileOutput, error) {
	p, err := uc.loadForMutation(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveExperience(input.EntryID) {
		return &ProfileOutput{Profile: p}, nil
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publishProfileEvent(ctx, event.TypeExperienceRemoved, input.UserID)
	return &ProfileOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) loadForMutation(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFoundMsg("There is no profile for this user")
		}
		return nil, err
	}
	return p, nil
}
