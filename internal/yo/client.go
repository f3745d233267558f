// Package yo talks to the Yo push-notification API. The alert pipeline needs
// one question answered: does this username exist.
package yo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/chybby/tutorifull/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client checks Yo usernames against the Yo API, caching answers in Redis so
// the per-keystroke validation endpoint does not hammer the remote service.
// A nil Redis client disables caching.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
	rdb      *redis.Client
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewClient creates a Yo API client from configuration.
func NewClient(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  cfg.YoAPIURL,
		apiToken: cfg.YoAPIToken,
		http:     &http.Client{Timeout: 10 * time.Second},
		rdb:      rdb,
		cacheTTL: cfg.YoCacheTTL,
		log:      log.With().Str("component", "yo_client").Logger(),
	}
}

// IsValidName reports whether name is a registered Yo username. The caller
// normalizes the name (uppercase, alphanumeric) before lookup. Cache
// problems degrade to a remote call; they never fail the check.
func (c *Client) IsValidName(ctx context.Context, name string) (bool, error) {
	cacheKey := config.CacheKey.YoNameExistsKey(name)

	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached == "1", nil
		}
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("yo name cache read failed")
		}
	}

	exists, err := c.checkUsername(ctx, name)
	if err != nil {
		return false, err
	}

	if c.rdb != nil {
		val := "0"
		if exists {
			val = "1"
		}
		if err := c.rdb.Set(ctx, cacheKey, val, c.cacheTTL).Err(); err != nil {
			c.log.Warn().Err(err).Msg("yo name cache write failed")
		}
	}

	return exists, nil
}

func (c *Client) checkUsername(ctx context.Context, name string) (bool, error) {
	u, err := url.Parse(c.baseURL + "/check_username/")
	if err != nil {
		return false, fmt.Errorf("parse yo URL: %w", err)
	}
	q := u.Query()
	q.Set("api_token", c.apiToken)
	q.Set("username", name)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, fmt.Errorf("build yo request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("call yo API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return false, fmt.Errorf("read yo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := struct {
			Error string `json:"error"`
		}{Error: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
		_ = json.Unmarshal(body, &apiErr)
		return false, fmt.Errorf("yo API: %s", apiErr.Error)
	}

	var out struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return false, fmt.Errorf("decode yo response: %w", err)
	}
	return out.Exists, nil
}
