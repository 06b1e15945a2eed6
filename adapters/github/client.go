package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yash-jivani/DevNetworks/internal/config"
	domain "github.com/yash-jivani/DevNetworks/internal/domain/github"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

// Client proxies the upstream repository-listing API. No retry or backoff:
// one bounded call per request, with a Redis cache in front.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     logger.Logger
}

func NewClient(cfg config.Config, cache *redis.Client, log logger.Logger) *Client {
	return &Client{
		baseURL: cfg.GitHub.BaseURL,
		token:   cfg.GitHub.Token,
		httpClient: &http.Client{
			Timeout: cfg.GitHub.Timeout,
		},
		cache:    cache,
		cacheTTL: cfg.GitHub.CacheTTL,
		logger:   log,
	}
}

func cacheKey(username string, limit int) string {
	return fmt.Sprintf("github:repos:%s:%d", username, limit)
}

func (c *Client) ListRepos(ctx context.Context, username string, limit int) ([]domain.Repo, error) {
	if repos, ok := c.fromCache(ctx, username, limit); ok {
		return repos, nil
	}

	reqURL := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=created:asc",
		c.baseURL, url.PathEscape(username), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build github request", err)
	}
	req.Header.Set("User-Agent", "devnetworks-api")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperror.NewUpstream("github request timed out", err)
		}
		return nil, apperror.NewUpstream("github request failed", err)
	}
	defer resp.Body.Close()

	// Every non-200 is reported as not-found; upstream status codes are
	// never surfaced to clients.
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewNotFoundMsg("No github profile found")
	}

	var repos []domain.Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, apperror.NewUpstream("failed to decode github response", err)
	}
	if len(repos) > limit {
		repos = repos[:limit]
	}

	c.toCache(ctx, username, limit, repos)
	return repos, nil
}

func (c *Client) fromCache(ctx context.Context, username string, limit int) ([]domain.Repo, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, cacheKey(username, limit)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("github cache read failed", zap.String("username", username), zap.Error(err))
		}
		return nil, false
	}
	var repos []domain.Repo
	if err := json.Unmarshal(raw, &repos); err != nil {
		c.logger.Warn("github cache entry corrupted", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	c.logger.Debug("github cache hit", zap.String("username", username), zap.Int("repos", len(repos)))
	return repos, true
}

func (c *Client) toCache(ctx context.Context, username string, limit int, repos []domain.Repo) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(repos)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(username, limit), raw, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("github cache write failed", zap.String("username", username), zap.Error(err))
	}
}
