// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Op names a wrapped backend endpoint
type Op string

const (
	OpSearchPolls    Op = "search_polls"
	OpGetPoll        Op = "get_poll"
	OpCreatePoll     Op = "create_poll"
	OpVote           Op = "vote"
	OpUserInfo       Op = "user_info"
	OpUserPolls      Op = "user_polls"
	OpUserVotedPolls Op = "user_voted_polls"
	OpLogin          Op = "login"
	OpSignup         Op = "signup"
	OpUpdateProfile  Op = "update_profile"
)

// messages are shown to the user verbatim when the call fails
var messages = map[Op]string{
	OpSearchPolls:    "検索に失敗しました",
	OpGetPoll:        "投票の取得に失敗しました",
	OpCreatePoll:     "投票の作成に失敗しました",
	OpVote:           "投票に失敗しました",
	OpUserInfo:       "ユーザー情報の取得に失敗しました",
	OpUserPolls:      "投票一覧の取得に失敗しました",
	OpUserVotedPolls: "参加した投票の取得に失敗しました",
	OpLogin:          "ログインに失敗しました",
	OpSignup:         "登録に失敗しました",
	OpUpdateProfile:  "更新に失敗しました",
}

// Message returns the user-facing failure message for op
func (op Op) Message() string {
	if m, ok := messages[op]; ok {
		return m
	}
	return "エラーが発生しました"
}

// APIError is returned by every client method on failure.
//
// StatusCode is the backend's status for HTTP failures and 0 when the
// request never completed. Err is set for transport and decode failures.
type APIError struct {
	Op         Op
	StatusCode int
	Message    string
	Detail     string
	Err        error
}

// Error returns the user-facing message so pages can show it as-is
func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Describe summarizes the failure for logs
func (e *APIError) Describe() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
}

// NotFound reports whether the backend answered 404
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unauthorized reports whether the backend rejected the session
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DetailOrMessage prefers the backend's detail text when it sent one
func (e *APIError) DetailOrMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// AsAPIError extracts an *APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newStatusError(op Op, status int, detail string) *APIError {
	return &APIError{Op: op, StatusCode: status, Message: op.Message(), Detail: detail}
}

func newCauseError(op Op, status int, err error) *APIError {
	return &APIError{Op: op, StatusCode: status, Message: op.Message(), Err: err}
}
