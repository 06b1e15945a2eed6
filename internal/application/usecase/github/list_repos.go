package github

import (
	"context"

	"github.com/yash-jivani/DevNetworks/internal/domain/github"
)

const repoLimit = 5

type ListReposUseCase struct {
	lister github.Lister
}

func NewListReposUseCase(lister github.Lister) *ListReposUseCase {
	return &ListReposUseCase{lister: lister}
}

type ListReposInput struct {
	Username string
}

type ListReposOutput struct {
	Repos []github.Repo
}

func (uc *ListReposUseCase) Execute(ctx context.Context, input ListReposInput) (*ListReposOutput, error) {
	repos, err := uc.lister.ListRepos(ctx, input.Username, repoLimit)
	if err != nil {
		return nil, err
	}
	return &ListReposOutput{Repos: repos}, nil
}
