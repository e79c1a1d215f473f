package facts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sandevgo/factdeck/internal/core"
	"github.com/sandevgo/factdeck/pkg/conv"
	"github.com/sandevgo/factdeck/pkg/retry"
	"golang.org/x/time/rate"
)

// RandomPath is the provider endpoint for one random fact.
const RandomPath = "/api/v2/facts/random"

const (
	defaultMaxBody   = 64 << 10
	errorBodyLimit   = 4 << 10
	errorDetailRunes = 200
)

// ErrFetchFailed wraps every failure of RandomFact: transport errors, non-2xx
// statuses and unusable bodies alike.
var ErrFetchFailed = errors.New("fetch failed")

// randomFactResponse mirrors the fields of the provider payload we use.
type randomFactResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	SourceURL string `json:"source_url"`
}

type Client struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	retrier  *retry.Retrier
	maxBody  int64
}

func NewClient(cfg core.ProviderConfig) *Client {
	limit := rate.Limit(cfg.GetRateLimit())
	if cfg.GetRateLimit() <= 0 {
		limit = rate.Inf
	}
	burst := cfg.GetRateBurst()
	if burst < 1 {
		burst = 1
	}
	maxBody := cfg.GetMaxBodyBytes()
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.GetProviderURL(), "/") + RandomPath,
		client: &http.Client{
			// zero means the request waits for the transport to resolve or fail
			Timeout: cfg.GetHTTPTimeout(),
		},
		limiter: rate.NewLimiter(limit, burst),
		retrier: retry.NewRetrier(retry.NewConfig(cfg.GetRetries())),
		maxBody: maxBody,
	}
}

// RandomFact implements core.FactProvider.
func (c *Client) RandomFact(ctx context.Context) (core.Fact, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return core.Fact{}, fmt.Errorf("%w: rate limit: %w", ErrFetchFailed, err)
	}

	var fact core.Fact
	err := c.retrier.Do(ctx, func() error {
		f, err := c.fetchOnce(ctx)
		if err != nil {
			return err
		}
		fact = f
		return nil
	})
	if err != nil {
		return core.Fact{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return fact, nil
}

func (c *Client) fetchOnce(ctx context.Context) (core.Fact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return core.Fact{}, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", core.AppUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return core.Fact{}, retry.Permanent(err)
		}
		return core.Fact{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(resp)
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return core.Fact{}, retry.Permanent(err)
		}
		return core.Fact{}, err
	}

	var payload randomFactResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBody)).Decode(&payload); err != nil {
		return core.Fact{}, retry.Permanent(fmt.Errorf("decode body: %w", err))
	}

	// the text is stored exactly as the provider sent it
	return core.Fact{
		Text:      payload.Text,
		SourceURL: strings.TrimSpace(payload.SourceURL),
	}, nil
}

// statusError describes a non-2xx response. Gateways in front of the provider
// answer with HTML error pages, so those are flattened before they reach the log.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	// drain the rest so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	detail := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		detail = conv.PlainText(detail)
	}
	detail = strings.Join(strings.Fields(detail), " ")
	if r := []rune(detail); len(r) > errorDetailRunes {
		detail = string(r[:errorDetailRunes]) + "..."
	}

	if detail == "" {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, detail)
}
