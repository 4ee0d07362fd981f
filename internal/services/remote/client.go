// Package remote talks to the document service over HTTP and websockets.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/simplereplay/replay/api/types"
	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/logging"

	"github.com/simplereplay/replay/internal/models"
)

const projectsPath = "/api/v1/projects"

// Client handles communication with the document service
type Client struct {
	httpClient *http.Client
	dialer     *websocket.Dialer
	baseURL    string
	userAgent  string
	log        *logrus.Entry
}

// Config holds configuration for the document service client
type Config struct {
	BaseURL          string
	UserAgent        string
	Timeout          time.Duration
	HandshakeTimeout time.Duration
	Logger           *logrus.Logger
}

// NewClient creates a new document service client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "replay/1.0"
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		dialer:     &websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		log:        logging.WithComponent(cfg.Logger, "remote"),
	}
}

// HTTPError is returned for non-2xx responses
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("document service returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("document service returned %d: %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether the same request may succeed later
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusRequestTimeout
}

// Create stores a new document and returns it with its assigned id
func (c *Client) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	return c.do(ctx, http.MethodPost, projectsPath, doc)
}

// Merge updates the fields set in doc on the document with the given id
func (c *Client) Merge(ctx context.Context, id string, doc *models.Document) (*models.Document, error) {
	return c.do(ctx, http.MethodPut, projectsPath+"/"+url.PathEscape(id), doc)
}

// Fetch returns the document or a NOT_FOUND error
func (c *Client) Fetch(ctx context.Context, id string) (*models.Document, error) {
	return c.do(ctx, http.MethodGet, projectsPath+"/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body *models.Document) (*models.Document, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding document: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, method+" "+path, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("Document service request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp)
	}

	var out types.ProjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.ExternalServiceError("documents", fmt.Errorf("decoding response: %w", err))
	}
	if out.Project == nil {
		return nil, apperrors.ExternalServiceError("documents", errors.New("response carried no project"))
	}
	return out.Project, nil
}

func transportError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError(op, "deadline").WithCause(err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.TimeoutError(op, "client timeout").WithCause(err)
	}
	return apperrors.ExternalServiceError("documents", err)
}

func responseError(resp *http.Response) error {
	httpErr := &HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body types.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		httpErr.Code = body.Error
		if body.Message != "" {
			httpErr.Message = body.Message
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.Wrap(httpErr, apperrors.ErrCodeNotFound, "project not found")
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && httpErr.Code != "":
		return apperrors.Wrap(httpErr, apperrors.ErrorCode(httpErr.Code), httpErr.Message)
	default:
		return apperrors.ExternalServiceError("documents", httpErr)
	}
}
