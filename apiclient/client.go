// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/models"
)

// APIPath is the versioned prefix of every backend endpoint
const APIPath = "/api/v0"

// maxErrorBody bounds how much of a failed response is read for its detail
const maxErrorBody = 64 << 10

// Client calls the polls backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend at backendURL (scheme and host,
// without the API prefix). A nil httpClient uses http.DefaultClient.
func New(backendURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(backendURL, "/") + APIPath,
		httpClient: httpClient,
	}
}

// BaseURL returns the resolved API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchPolls handles GET /polls/search. An empty query lists every poll.
func (c *Client) SearchPolls(ctx context.Context, query string) (models.PollResponse, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"query": {query}}
	}

	var resp models.PollResponse
	_, err := c.do(ctx, request{op: OpSearchPolls, method: http.MethodGet, path: "/polls/search", query: q}, &resp)
	return resp, err
}

// GetPoll handles GET /polls/{id}
func (c *Client) GetPoll(ctx context.Context, id string) (models.PollDetail, error) {
	var poll models.PollDetail
	_, err := c.do(ctx, request{op: OpGetPoll, method: http.MethodGet, path: "/polls/" + url.PathEscape(id)}, &poll)
	return poll, err
}

// CreatePoll handles POST /polls
func (c *Client) CreatePoll(ctx context.Context, sess auth.Session, req models.CreatePollRequest) (models.Poll, error) {
	body, err := jsonBody(req)
	if err != nil {
		return models.Poll{}, newCauseError(OpCreatePoll, 0, err)
	}

	var poll models.Poll
	_, err = c.do(ctx, request{
		op:          OpCreatePoll,
		method:      http.MethodPost,
		path:        "/polls",
		session:     sess,
		body:        body,
		contentType: "application/json",
	}, &poll)
	return poll, err
}

// Vote handles POST /polls/{id}/vote. The backend returns no body.
func (c *Client) Vote(ctx context.Context, sess auth.Session, pollID, choiceID string) error {
	body, err := jsonBody(models.VoteRequest{ChoiceID: choiceID})
	if err != nil {
		return newCauseError(OpVote, 0, err)
	}

	_, err = c.do(ctx, request{
		op:          OpVote,
		method:      http.MethodPost,
		path:        "/polls/" + url.PathEscape(pollID) + "/vote",
		session:     sess,
		body:        body,
		contentType: "application/json",
	}, nil)
	return err
}

// UserInfo handles GET /users/me
func (c *Client) UserInfo(ctx context.Context, sess auth.Session) (models.User, error) {
	var user models.User
	_, err := c.do(ctx, request{op: OpUserInfo, method: http.MethodGet, path: "/users/me", session: sess}, &user)
	return user, err
}

// UserPolls handles GET /users/me/polls
func (c *Client) UserPolls(ctx context.Context, sess auth.Session) (models.PollResponse, error) {
	var resp models.PollResponse
	_, err := c.do(ctx, request{op: OpUserPolls, method: http.MethodGet, path: "/users/me/polls", session: sess}, &resp)
	return resp, err
}

// UserVotedPolls handles GET /users/me/voted
func (c *Client) UserVotedPolls(ctx context.Context, sess auth.Session) (models.PollResponse, error) {
	var resp models.PollResponse
	_, err := c.do(ctx, request{op: OpUserVotedPolls, method: http.MethodGet, path: "/users/me/voted", session: sess}, &resp)
	return resp, err
}

// Login handles POST /auth/login and returns the cookies the backend set
func (c *Client) Login(ctx context.Context, req models.LoginRequest) ([]*http.Cookie, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, newCauseError(OpLogin, 0, err)
	}

	resp, err := c.do(ctx, request{
		op:          OpLogin,
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        body,
		contentType: "application/json",
	}, nil)
	if err != nil {
		return nil, err
	}
	return resp.Cookies(), nil
}

// Signup handles POST /auth/signup. The backend expects multipart form data.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("username", req.Username); err != nil {
		return newCauseError(OpSignup, 0, err)
	}
	if err := mw.WriteField("password", req.Password); err != nil {
		return newCauseError(OpSignup, 0, err)
	}
	if err := mw.Close(); err != nil {
		return newCauseError(OpSignup, 0, err)
	}

	_, err := c.do(ctx, request{
		op:          OpSignup,
		method:      http.MethodPost,
		path:        "/auth/signup",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, nil)
	return err
}

// UpdateProfile handles POST /users
func (c *Client) UpdateProfile(ctx context.Context, sess auth.Session, req models.UpdateProfileRequest) error {
	body, err := jsonBody(req)
	if err != nil {
		return newCauseError(OpUpdateProfile, 0, err)
	}

	_, err = c.do(ctx, request{
		op:          OpUpdateProfile,
		method:      http.MethodPost,
		path:        "/users",
		session:     sess,
		body:        body,
		contentType: "application/json",
	}, nil)
	return err
}

type request struct {
	op          Op
	method      string
	path        string
	query       url.Values
	session     auth.Session
	body        io.Reader
	contentType string
}

// do performs one backend call. A non-nil out is decoded from the response
// body and checked against its validate tags before it is returned.
func (c *Client) do(ctx context.Context, r request, out interface{}) (*http.Response, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, r.body)
	if err != nil {
		return nil, newCauseError(r.op, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	r.session.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := newCauseError(r.op, 0, err)
		slog.Warn("backend call failed", "op", r.op, "error", apiErr.Describe())
		return nil, apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(r.op, resp.StatusCode, readDetail(resp.Body))
		slog.Warn("backend call failed", "op", r.op, "status", resp.StatusCode, "detail", apiErr.Detail)
		return nil, apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		apiErr := newCauseError(r.op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
		slog.Warn("backend call failed", "op", r.op, "error", apiErr.Describe())
		return nil, apiErr
	}

	if err := models.Validate(out); err != nil {
		apiErr := newCauseError(r.op, resp.StatusCode, fmt.Errorf("invalid response: %w", err))
		slog.Warn("backend response failed validation", "op", r.op, "error", apiErr.Describe())
		return nil, apiErr
	}

	return resp, nil
}

func jsonBody(v interface{}) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// readDetail extracts a {"detail": "..."} message from an error body.
// Anything else yields an empty detail.
func readDetail(body io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var er models.ErrorResponse
	if err := json.Unmarshal(b, &er); err != nil {
		return ""
	}
	return er.Detail
}
