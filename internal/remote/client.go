// Package remote is the thin gateway onto the FitStake backend: it
// translates local calls into HTTP requests against the challenge, fee and
// participation endpoints and maps transport failures onto the domain error
// taxonomy. It holds no state beyond the HTTP clients.
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
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fitstake/fitstake-go/internal/domain"
	"github.com/fitstake/fitstake-go/internal/logger"
)

// Gateway is the remote resource gateway consumed by the sync controller
// and the fee configuration loader.
type Gateway interface {
	ListChallenges(ctx context.Context) ([]domain.Challenge, error)
	GetChallenge(ctx context.Context, id string) (*domain.Challenge, error)
	SearchChallenges(ctx context.Context, query domain.ChallengeSearchQuery) ([]domain.Challenge, error)
	ActivityFeed(ctx context.Context, limit int) ([]domain.ActivityEntry, error)

	JoinChallenge(ctx context.Context, id string, stake float64, email string) (*domain.JoinResult, error)
	CompleteChallenge(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error)
	SubmitResult(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error)

	ListMyParticipations(ctx context.Context, email string) ([]domain.Participation, error)
	GetParticipation(ctx context.Context, challengeID, email string) (*domain.Participation, error)

	GetSettings(ctx context.Context) (*domain.FeeConfig, error)
}

// Client is the HTTP implementation of Gateway.
// Reads retry on transient failures; writes never retry because join and
// complete are not idempotent on the backend.
type Client struct {
	baseURL string
	reads   *retryablehttp.Client
	writes  *retryablehttp.Client
}

var _ Gateway = (*Client)(nil)

// NewClient creates a gateway client. timeout bounds every request;
// maxRetries applies to read requests only.
func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		baseURL: baseURL,
		reads:   newHTTPClient(timeout, maxRetries),
		writes:  newHTTPClient(timeout, 0),
	}
}

func newHTTPClient(timeout time.Duration, maxRetries int) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = maxRetries
	c.RetryWaitMin = 250 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.HTTPClient.Timeout = timeout
	c.Logger = nil
	return c
}

// response envelopes as the backend serves them

type challengesEnvelope struct {
	Success    bool               `json:"success"`
	Challenges []domain.Challenge `json:"challenges"`
}

type challengeEnvelope struct {
	Success   bool             `json:"success"`
	Challenge domain.Challenge `json:"challenge"`
}

type participationsEnvelope struct {
	Success        bool                   `json:"success"`
	Participations []domain.Participation `json:"participations"`
	Total          int                    `json:"total"`
}

type participationEnvelope struct {
	Success       bool                 `json:"success"`
	Participation domain.Participation `json:"participation"`
}

type activityEnvelope struct {
	Success  bool                   `json:"success"`
	Activity []domain.ActivityEntry `json:"activity"`
}

type settingsEnvelope struct {
	Success  bool             `json:"success"`
	Settings domain.FeeConfig `json:"settings"`
}

// ListChallenges fetches the full challenge collection
func (c *Client) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	env, err := doGet[challengesEnvelope](ctx, c.reads, c.baseURL+PathChallenges, nil)
	if err != nil {
		return nil, err
	}
	return env.Challenges, nil
}

// GetChallenge fetches one challenge by id
func (c *Client) GetChallenge(ctx context.Context, id string) (*domain.Challenge, error) {
	env, err := doGet[challengeEnvelope](ctx, c.reads, c.baseURL+fmt.Sprintf(PathChallenge, url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}
	return &env.Challenge, nil
}

// SearchChallenges runs a filtered challenge search
func (c *Client) SearchChallenges(ctx context.Context, query domain.ChallengeSearchQuery) ([]domain.Challenge, error) {
	params := url.Values{}
	if query.Text != "" {
		params.Set(ParamQuery, query.Text)
	}
	if query.Category != "" {
		params.Set(ParamCategory, query.Category)
	}
	if query.Status != "" {
		params.Set(ParamStatus, query.Status)
	}
	if query.Sort != "" {
		params.Set(ParamSort, query.Sort)
	}

	env, err := doGet[challengesEnvelope](ctx, c.reads, c.baseURL+PathSearch, params)
	if err != nil {
		return nil, err
	}
	return env.Challenges, nil
}

// ActivityFeed fetches the global activity feed
func (c *Client) ActivityFeed(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set(ParamLimit, strconv.Itoa(limit))
	}

	env, err := doGet[activityEnvelope](ctx, c.reads, c.baseURL+PathActivity, params)
	if err != nil {
		return nil, err
	}
	return env.Activity, nil
}

type joinRequest struct {
	StakeAmount float64 `json:"stake_amount"`
	UserEmail   string  `json:"user_email"`
}

// JoinChallenge stakes the given amount on a challenge
func (c *Client) JoinChallenge(ctx context.Context, id string, stake float64, email string) (*domain.JoinResult, error) {
	body := joinRequest{StakeAmount: stake, UserEmail: email}
	result, err := doPost[domain.JoinResult](ctx, c.writes, c.baseURL+fmt.Sprintf(PathJoinChallenge, url.PathEscape(id)), body)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type completeRequest struct {
	Result    domain.ChallengeResult `json:"result"`
	UserEmail string                 `json:"user_email"`
}

// CompleteChallenge reports a challenge as completed for the given user
func (c *Client) CompleteChallenge(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error) {
	body := completeRequest{Result: result, UserEmail: email}
	res, err := doPost[domain.CompleteResult](ctx, c.writes, c.baseURL+fmt.Sprintf(PathCompleteChall, url.PathEscape(id)), body)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitResult submits an intermediate result for server-side validation
func (c *Client) SubmitResult(ctx context.Context, id string, result domain.ChallengeResult, email string) (*domain.CompleteResult, error) {
	body := completeRequest{Result: result, UserEmail: email}
	res, err := doPost[domain.CompleteResult](ctx, c.writes, c.baseURL+fmt.Sprintf(PathSubmitResult, url.PathEscape(id)), body)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListMyParticipations fetches every participation for the given user
func (c *Client) ListMyParticipations(ctx context.Context, email string) ([]domain.Participation, error) {
	params := url.Values{ParamUserEmail: []string{email}}
	env, err := doGet[participationsEnvelope](ctx, c.reads, c.baseURL+PathMyParticipations, params)
	if err != nil {
		return nil, err
	}
	return env.Participations, nil
}

// GetParticipation fetches a single user's participation in one challenge.
// A 404 maps to domain.ErrNotFound: "not participating" is a valid steady
// state, not a failure.
func (c *Client) GetParticipation(ctx context.Context, challengeID, email string) (*domain.Participation, error) {
	params := url.Values{ParamUserEmail: []string{email}}
	env, err := doGet[participationEnvelope](ctx, c.reads, c.baseURL+fmt.Sprintf(PathParticipation, url.PathEscape(challengeID)), params)
	if err != nil {
		return nil, err
	}
	return &env.Participation, nil
}

// GetSettings fetches the platform fee configuration
func (c *Client) GetSettings(ctx context.Context) (*domain.FeeConfig, error) {
	env, err := doGet[settingsEnvelope](ctx, c.reads, c.baseURL+PathSettings, nil)
	if err != nil {
		return nil, err
	}
	return &env.Settings, nil
}

// Ping checks backend reachability for readiness probes
func (c *Client) Ping(ctx context.Context) error {
	_, err := doGet[settingsEnvelope](ctx, c.reads, c.baseURL+PathSettings, nil)
	return err
}

// FetchSettings is the Result-typed variant used where a fallback policy is
// applied at the call site.
func (c *Client) FetchSettings(ctx context.Context) Result[domain.FeeConfig] {
	settings, err := c.GetSettings(ctx)
	if err != nil {
		return Fail[domain.FeeConfig](err)
	}
	return Ok(*settings)
}

func doGet[T any](ctx context.Context, hc *retryablehttp.Client, rawURL string, params url.Values) (T, error) {
	var zero T

	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", ErrContextBuildRequest, err)
	}

	return execute[T](ctx, hc, req)
}

func doPost[T any](ctx context.Context, hc *retryablehttp.Client, rawURL string, body any) (T, error) {
	var zero T

	encoded, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", ErrContextEncodeBody, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(encoded))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", ErrContextBuildRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return execute[T](ctx, hc, req)
}

func execute[T any](ctx context.Context, hc *retryablehttp.Client, req *retryablehttp.Request) (T, error) {
	var zero T

	resp, err := hc.Do(req)
	if err != nil {
		kind := classifyTransportError(err)
		logger.FromContext(ctx).Warn(LogMsgRequestFailed, "url", req.URL.String(), "error", err)
		return zero, fmt.Errorf("%s: %w", ErrContextDoRequest, kind)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return zero, domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.FromContext(ctx).Warn(LogMsgNon2xxStatus, "url", req.URL.String(), "status", resp.StatusCode)
		return zero, fmt.Errorf("%s %d: %w", ErrContextUnexpectedTwo, resp.StatusCode, domain.ErrNetwork)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("%s: %w", ErrContextDecodeBody, domain.ErrNetwork)
	}
	return out, nil
}

// classifyTransportError separates client-side deadline expiry from other
// transport failures so the two surface as distinct error kinds.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrNetworkTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrNetworkTimeout
	}
	return domain.ErrNetwork
}
