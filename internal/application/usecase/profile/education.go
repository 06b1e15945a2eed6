package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yash-jivani/DevNetworks/internal/domain/event"
	"github.com/yash-jivani/DevNetworks/internal/domain/profile"
)

type AddEducationInput struct {
	UserID       uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input AddEducationInput) (*ProfileOutput, error) {
	p, err := uc.loadForMutation(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(profile.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publishProfileEvent(ctx, event.TypeEducationAdded, input.UserID)
	return &ProfileOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) ExecuteRemoveEducation(ctx context.Context, input RemoveEntryInput) (*ProfileOutput, error) {
	p, err := uc.loadForMutation(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveEducation(input.EntryID) {
		return &ProfileOutput{Profile: p}, nil
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publishProfileEvent(ctx, event.TypeEducationRemoved, input.UserID)
	return &ProfileOutput{Profile: p}, nil
}
