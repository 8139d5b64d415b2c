package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	apiBase = "https://api.github.com"
	rawBase = "https://raw.githubusercontent.com"
	cdnBase = "https://cdn.jsdelivr.net/gh"
)

var (
	// ErrNotFound means the upstream confirmed the resource is absent;
	// never retried.
	ErrNotFound = errors.New("resource not found upstream")
	// ErrUnavailable means all attempts failed with transient errors.
	ErrUnavailable = errors.New("upstream unavailable")
)

const maxAttempts = 3

// Per-attempt budgets. A timeout ends that attempt only; the next
// attempt starts with a fresh budget.
const (
	listTimeout  = 8 * time.Second
	fetchTimeout = 15 * time.Second
)

// backoffDelay returns the wait before the given 1-based attempt:
// nothing before the first, then 1s, 2s, capped at 4s.
func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	d := time.Duration(1<<uint(attempt-2)) * time.Second
	if d > 4*time.Second {
		d = 4 * time.Second
	}
	return d
}

// Repo identifies a directory of a GitHub repository.
type Repo struct {
	Owner  string
	Name   string
	Path   string // repo-relative, empty for the repository root
	Branch string
}

func (r Repo) innerPath(file string) string {
	if r.Path == "" {
		return file
	}
	return r.Path + "/" + file
}

// Entry is one item of a Contents API directory listing.
type Entry struct {
	Name        string `json:"name"`
	SHA         string `json:"sha"`
	DownloadURL string `json:"download_url"`
}

// Client fetches repository content with bounded retries, exponential
// backoff and a request rate limit.
type Client struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	userAgent    string
	token        string
	apiBase      string
	listTimeout  time.Duration
	fetchTimeout time.Duration
	backoff      func(attempt int) time.Duration
}

func NewClient(userAgent, token string, rps int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient:   &http.Client{},
		limiter:      rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		userAgent:    userAgent,
		token:        token,
		apiBase:      apiBase,
		listTimeout:  listTimeout,
		fetchTimeout: fetchTimeout,
		backoff:      backoffDelay,
	}
}

// ListContents returns the directory listing for repo. The Contents API
// returns a single object rather than an array when the path is a file;
// both shapes are accepted.
func (c *Client) ListContents(ctx context.Context, repo Repo) ([]Entry, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents", c.apiBase, repo.Owner, repo.Name)
	if repo.Path != "" {
		url += "/" + repo.Path
	}
	url += "?ref=" + repo.Branch

	body, err := c.fetch(ctx, url, c.listTimeout)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		var single Entry
		if err := json.Unmarshal(body, &single); err != nil {
			return nil, fmt.Errorf("decoding contents listing: %w", err)
		}
		entries = []Entry{single}
	}
	return entries, nil
}

// MirrorURLs returns the direct content locations for one yearly file,
// in preference order: raw.githubusercontent first, then the jsDelivr
// CDN mirror.
func (c *Client) MirrorURLs(repo Repo, year int) []string {
	inner := repo.innerPath(fmt.Sprintf("%d.json", year))
	return []string{
		fmt.Sprintf("%s/%s/%s/%s/%s", rawBase, repo.Owner, repo.Name, repo.Branch, inner),
		fmt.Sprintf("%s/%s/%s@%s/%s", cdnBase, repo.Owner, repo.Name, repo.Branch, inner),
	}
}

// Fetch performs one logical GET with up to three attempts. A 404 is
// terminal and returns ErrNotFound immediately; any other failure is
// retried after a backoff, then surfaced as ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url, c.fetchTimeout)
}

// fetch runs the retry loop. Every attempt gets its own timeout so a
// hung connection ends that attempt, not the whole logical fetch; only
// cancellation of the caller's context stops the loop early.
func (c *Client) fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if d := c.backoff(attempt); d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		body, err := c.get(attemptCtx, url)
		cancel()
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, maxAttempts, lastErr)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
