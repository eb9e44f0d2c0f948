// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/decidebox/apiclient"
	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/middleware"
	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/views"
)

// Backend is the part of the polls API the pages call.
// *apiclient.Client implements it.
type Backend interface {
	SearchPolls(ctx context.Context, query string) (models.PollResponse, error)
	GetPoll(ctx context.Context, id string) (models.PollDetail, error)
	CreatePoll(ctx context.Context, sess auth.Session, req models.CreatePollRequest) (models.Poll, error)
	Vote(ctx context.Context, sess auth.Session, pollID, choiceID string) error
	UserInfo(ctx context.Context, sess auth.Session) (models.User, error)
	UserPolls(ctx context.Context, sess auth.Session) (models.PollResponse, error)
	UserVotedPolls(ctx context.Context, sess auth.Session) (models.PollResponse, error)
	Login(ctx context.Context, req models.LoginRequest) ([]*http.Cookie, error)
	Signup(ctx context.Context, req models.SignupRequest) error
	UpdateProfile(ctx context.Context, sess auth.Session, req models.UpdateProfileRequest) error
}

var _ Backend = (*apiclient.Client)(nil)

// Paths the handlers redirect to
const (
	loginPath  = "/login"
	mypagePath = "/mypage"
)

// pages holds what every page handler needs
type pages struct {
	api   Backend
	views *views.Renderer
	cfg   cliparse.Config
}

// render fills the shared page fields and writes the page.
// errMsg becomes the page's error banner.
func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name, title, errMsg string, data interface{}) {
	p.views.Render(w, status, name, views.Page{
		Title:         title,
		Path:          r.URL.Path,
		CSRFToken:     middleware.CSRFToken(r.Context()),
		Flash:         views.PopFlash(w, r),
		Error:         errMsg,
		Authenticated: auth.SessionFromContext(r.Context()).Authenticated(),
		Data:          data,
	})
}

// redirect sets a flash message and sends the browser to location
func redirect(w http.ResponseWriter, r *http.Request, location, flash string) {
	if flash != "" {
		views.SetFlash(w, flash)
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// failureStatus picks the page status for a failed backend call.
// Client errors the backend reported pass through; the rest are 502.
func failureStatus(err error) int {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

// sessionExpired reports whether err means the backend no longer
// accepts the browser's session
func sessionExpired(err error) bool {
	apiErr, ok := apiclient.AsAPIError(err)
	return ok && apiErr.Unauthorized()
}

// NotFound renders the 404 page for unknown routes
func NotFound(v *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := pages{views: v}
		p.render(w, r, http.StatusNotFound, views.PageError, "ページが見つかりません", "",
			views.ErrorData{Status: http.StatusNotFound, Message: "お探しのページは見つかりませんでした。"})
	}
}
