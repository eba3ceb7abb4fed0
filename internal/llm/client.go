package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest is one prompt sent to the judge model.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	JSON         bool     // constrain the reply to a JSON object
	Temperature  *float64 // nil uses the task setting
	MaxTokens    *int     // nil uses the task setting
}

type GenerateResponse struct {
	Text      string
	Model     string
	Tokens    int // tokens produced, as reported by Ollama
	LatencyMs int64
	Attempts  int
}

// LLMClient is what the evaluation judge needs from a model server.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the server answers and has the configured
	// model pulled.
	Available(ctx context.Context) bool
}

type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient returns an LLMClient for the Ollama HTTP API at
// cfg.Endpoint.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		observer: observer,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Format  string        `json:"format,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count"`
	Error     string `json:"error,omitempty"`
}

// statusError is a non-200 reply. 4xx replies other than 408 and 429 are
// permanent and end the retry loop.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.code, e.msg)
}

func (e *statusError) permanent() bool {
	return e.code >= 400 && e.code < 500 &&
		e.code != http.StatusRequestTimeout && e.code != http.StatusTooManyRequests
}

func (c *ollamaClient) buildRequest(req GenerateRequest) ollamaRequest {
	task := c.cfg.Tasks[req.Task]
	body := ollamaRequest{
		Model:  c.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Options: ollamaOptions{
			Temperature: task.Temperature,
			NumPredict:  task.MaxTokens,
		},
	}
	if req.Temperature != nil {
		body.Options.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		body.Options.NumPredict = *req.MaxTokens
	}
	if req.JSON {
		body.Format = "json"
	}
	return body
}

// Generate makes up to 1+MaxRetries attempts. Attempt i runs under the task
// timeout shifted left by i. Cancelling ctx or a permanent error stops the
// loop.
func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	body := c.buildRequest(req)
	base := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	event := LLMCallEvent{Task: req.Task, Model: c.cfg.Model}
	var lastErr error
	for i := range 1 + c.cfg.MaxRetries {
		event.Attempts++
		resp, err := c.attempt(ctx, body, base<<i)
		if err == nil {
			event.Success = true
			event.Tokens = resp.EvalCount
			event.LatencyMs = time.Since(start).Milliseconds()
			c.observer.OnCallComplete(event)
			return &GenerateResponse{
				Text:      resp.Response,
				Model:     resp.Model,
				Tokens:    resp.EvalCount,
				LatencyMs: event.LatencyMs,
				Attempts:  event.Attempts,
			}, nil
		}
		lastErr = err

		var se *statusError
		if ctx.Err() != nil || errors.Is(err, ErrModelNotFound) || (errors.As(err, &se) && se.permanent()) {
			break
		}
	}

	final := classify(ctx, lastErr)
	event.LatencyMs = time.Since(start).Milliseconds()
	event.ErrorCode = errorCode(final)
	c.observer.OnCallComplete(event)
	return nil, final
}

func (c *ollamaClient) attempt(ctx context.Context, body ollamaRequest, timeout time.Duration) (*ollamaResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.post(ctx, body)
}

func (c *ollamaClient) post(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var resp ollamaResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if httpResp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && resp.Error != "" {
			msg = resp.Error
		}
		if httpResp.StatusCode == http.StatusNotFound && strings.Contains(msg, "not found") {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, body.Model)
		}
		return nil, &statusError{code: httpResp.StatusCode, msg: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, decodeErr)
	}
	if strings.TrimSpace(resp.Response) == "" {
		return nil, ErrEmptyResponse
	}
	return &resp, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Available lists the pulled models via /api/tags. A model configured
// without a tag matches its ":latest" entry.
func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}
	for _, m := range tags.Models {
		if m.Name == c.cfg.Model || m.Name == c.cfg.Model+":latest" {
			return true
		}
	}
	return false
}

// classify maps the last failure onto the package sentinels.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	case isConnectionError(err):
		return ErrOllamaUnavailable
	case errors.Is(err, ErrModelNotFound), errors.Is(err, ErrInvalidOutput):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrModelNotFound):
		return "MODEL_NOT_FOUND"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY_RESPONSE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
