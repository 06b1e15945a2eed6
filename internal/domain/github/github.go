package github

import "context"

// Repo is the subset of the upstream repository payload the API exposes.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// Lister returns up to limit of a user's most recently created repositories.
type Lister interface {
	ListRepos(ctx context.Context, username string, limit int) ([]Repo, error)
}
