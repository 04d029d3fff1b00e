package api

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

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrorBody is the error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithRateLimit throttles outgoing requests to rps per second. A non-positive
// rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(h *HTTPClient) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) Register(ctx context.Context, email, password, name string) error {
	req := registerRequest{Email: email, Password: password, Name: name}
	return c.do(ctx, "register", http.MethodPost, "/auth/register", "", req, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &common.NetworkError{Op: "login", StatusCode: http.StatusOK, Message: "response carries no token", Err: common.ErrRequestFailed}
	}
	return resp.Token, nil
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, "profile", http.MethodGet, "/auth/user", token, nil, &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, &common.NetworkError{Op: "profile", StatusCode: http.StatusOK, Message: "response carries no user id", Err: common.ErrRequestFailed}
	}
	return &u, nil
}

func (c *HTTPClient) ListGoals(ctx context.Context, token string) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := c.do(ctx, "list goals", http.MethodGet, "/goals", token, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *HTTPClient) CreateGoal(ctx context.Context, token string, g models.Goal) (models.Goal, error) {
	var out models.Goal
	if err := c.do(ctx, "create goal", http.MethodPost, "/goals", token, g, &out); err != nil {
		return models.Goal{}, err
	}
	if out.ID == "" {
		return models.Goal{}, missingID("create goal")
	}
	return out, nil
}

func (c *HTTPClient) UpdateGoal(ctx context.Context, token string, g models.Goal) (models.Goal, error) {
	var out models.Goal
	if err := c.do(ctx, "update goal", http.MethodPut, "/goals/"+url.PathEscape(g.ID), token, g, &out); err != nil {
		return models.Goal{}, err
	}
	if out.ID == "" {
		out = g
	}
	return out, nil
}

func (c *HTTPClient) DeleteGoal(ctx context.Context, token string, id string) error {
	return c.do(ctx, "delete goal", http.MethodDelete, "/goals/"+url.PathEscape(id), token, nil, nil)
}

func (c *HTTPClient) ListWorkouts(ctx context.Context, token string, userID string) ([]models.Workout, error) {
	workouts := []models.Workout{}
	path := "/workouts?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, "list workouts", http.MethodGet, path, token, nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) CreateWorkout(ctx context.Context, token string, w models.Workout) (models.Workout, error) {
	var out models.Workout
	if err := c.do(ctx, "create workout", http.MethodPost, "/workouts", token, w, &out); err != nil {
		return models.Workout{}, err
	}
	if out.ID == "" {
		return models.Workout{}, missingID("create workout")
	}
	return out, nil
}

func (c *HTTPClient) UpdateWorkout(ctx context.Context, token string, w models.Workout) (models.Workout, error) {
	var out models.Workout
	if err := c.do(ctx, "update workout", http.MethodPut, "/workouts/"+url.PathEscape(w.ID), token, w, &out); err != nil {
		return models.Workout{}, err
	}
	if out.ID == "" {
		out = w
	}
	return out, nil
}

func (c *HTTPClient) DeleteWorkout(ctx context.Context, token string, id string) error {
	return c.do(ctx, "delete workout", http.MethodDelete, "/workouts/"+url.PathEscape(id), token, nil, nil)
}

func missingID(op string) error {
	return &common.NetworkError{Op: op, StatusCode: http.StatusOK, Message: "response carries no id", Err: common.ErrRequestFailed}
}

func (c *HTTPClient) do(ctx context.Context, op, method, path, token string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &common.NetworkError{Op: op, Message: err.Error(), Err: errors.Join(common.ErrUnavailable, err)}
		}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "op", op, "method", method, "path", path, "request_id", requestID, "error", err)
		return &common.NetworkError{Op: op, Message: err.Error(), Err: errors.Join(common.ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"op", op, "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &common.NetworkError{Op: op, StatusCode: resp.StatusCode, Message: "malformed response", Err: errors.Join(common.ErrRequestFailed, err)}
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var eb ErrorBody
	msg := ""
	if json.Unmarshal(raw, &eb) == nil {
		msg = eb.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var cause error
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		cause = common.ErrUnauthorized
	case http.StatusNotFound:
		cause = common.ErrNotFound
	default:
		cause = common.ErrRequestFailed
	}
	return &common.NetworkError{Op: op, StatusCode: resp.StatusCode, Message: msg, Err: cause}
}
