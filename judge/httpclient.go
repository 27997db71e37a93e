package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// tokenExpirySlack is subtracted from the reported token lifetime so a
// token is refreshed before the judge starts rejecting it mid-request.
const tokenExpirySlack = 30 * time.Second

type HttpClientConfig struct {
	BaseURL  string
	Username string
	Password string

	// Timeout bounds a single judge call, auth included.
	Timeout time.Duration
}

// HttpClient is the production judge adapter. It authenticates against the
// judge's token endpoint, caches the bearer token and refreshes it
// transparently when it expires or the judge answers 401.
type HttpClient struct {
	cfg    HttpClientConfig
	client *http.Client
	logger *slog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewHttpClient(cfg HttpClientConfig, logger *slog.Logger) *HttpClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HttpClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("module", "judge"),
	}
}

// Submit sends the code to the judge and maps the outcome to a Verdict.
// Any failure talking to the judge resolves to a RuntimeError verdict so
// the submission still reaches a terminal state.
func (c *HttpClient) Submit(ctx context.Context, code string, language string, exerciseRef string) (Verdict, error) {
	verdict, err := c.trySubmit(ctx, code, language, exerciseRef)
	if err != nil {
		if ctx.Err() != nil {
			return Verdict{}, ctx.Err()
		}
		c.logger.Error("judge call failed, resolving to runtime error verdict",
			"exercise_ref", exerciseRef, "error", err)
		return Verdict{Status: StatusRuntimeError}, nil
	}
	return verdict, nil
}

func (c *HttpClient) trySubmit(ctx context.Context, code, language, exerciseRef string) (Verdict, error) {
	token, err := c.bearerToken(ctx, false)
	if err != nil {
		return Verdict{}, err
	}

	resp, status, err := c.postSubmission(ctx, token, code, language, exerciseRef)
	if status == http.StatusUnauthorized {
		// cached token went stale, refresh once and retry the same request
		token, err = c.bearerToken(ctx, true)
		if err != nil {
			return Verdict{}, err
		}
		resp, status, err = c.postSubmission(ctx, token, code, language, exerciseRef)
	}
	if err != nil {
		return Verdict{}, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return Verdict{}, fmt.Errorf("judge returned status %d", status)
	}

	mapped, ok := mapWireStatus(resp.Status)
	if !ok {
		return Verdict{}, fmt.Errorf("judge returned unknown verdict %q", resp.Status)
	}
	return Verdict{Status: mapped, ExecTimeMs: resp.ExecutionTimeMs}, nil
}

type submissionResponse struct {
	Status          string `json:"status"`
	ExecutionTimeMs int64  `json:"executionTimeMs"`
}

func (c *HttpClient) postSubmission(ctx context.Context, token, code, language, exerciseRef string) (*submissionResponse, int, error) {
	body, err := json.Marshal(map[string]string{
		"code":         code,
		"language":     language,
		"exerciseUuid": exerciseRef,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal judge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/submissions", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to reach judge: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusUnauthorized {
		return nil, httpResp.StatusCode, nil
	}

	var resp submissionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("failed to decode judge response: %w", err)
	}
	return &resp, httpResp.StatusCode, nil
}

// bearerToken returns the cached token, fetching a fresh one when the cache
// is empty, expired or force is set.
func (c *HttpClient) bearerToken(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal judge auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/authenticate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate against judge: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("judge auth returned status %d", httpResp.StatusCode)
	}

	var resp struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expiresIn"` // seconds
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode judge auth response: %w", err)
	}

	c.token = resp.Token
	c.tokenExpiry = time.Now().
		Add(time.Duration(resp.ExpiresIn) * time.Second).
		Add(-tokenExpirySlack)
	return c.token, nil
}

func mapWireStatus(wireStatus string) (Status, bool) {
	switch wireStatus {
	case "ACCEPTED":
		return StatusAccepted, true
	case "WRONG_ANSWER":
		return StatusWrongAnswer, true
	case "COMPILATION_ERROR":
		return StatusCompilationError, true
	case "RUNTIME_ERROR":
		return StatusRuntimeError, true
	case "TIME_LIMIT_EXCEEDED":
		return StatusTimeLimitExceeded, true
	case "MEMORY_LIMIT_EXCEEDED":
		return StatusMemoryLimitExceeded, true
	case "SECURITY_ERROR":
		return StatusSecurityError, true
	case "PRESENTATION_ERROR":
		return StatusPresentationError, true
	}
	return "", false
}
