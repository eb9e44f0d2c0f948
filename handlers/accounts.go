// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/decidebox/apiclient"
	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/polls"
	"github.com/danielhkuo/decidebox/views"
)

const (
	loggedInMessage = "ログインしました"
	signedUpMessage = "登録が完了しました！"
	errorPrefix     = "エラー: "
)

type AccountHandler struct {
	pages
}

func NewAccountHandler(api Backend, v *views.Renderer, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{pages{api: api, views: v, cfg: cfg}}
}

// LoginForm handles GET /login
func (h *AccountHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageLogin, "ログイン", "", views.LoginData{})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := models.LoginRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	data := views.LoginData{Username: req.Username}

	if err := polls.ValidateLogin(req); err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, views.PageLogin, "ログイン", errorPrefix+err.Error(), data)
		return
	}

	cookies, err := h.api.Login(r.Context(), req)
	if err != nil {
		h.render(w, r, failureStatus(err), views.PageLogin, "ログイン", errorPrefix+backendMessage(err), data)
		return
	}

	auth.Relay(w, cookies, h.cfg.SecureCookies)
	slog.Info("user logged in", "username", req.Username)
	redirect(w, r, mypagePath, loggedInMessage)
}

// SignupForm handles GET /signup
func (h *AccountHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageSignup, "サインアップ", "", views.SignupData{})
}

// Signup handles POST /signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	form := polls.SignupForm{
		Username:        r.PostFormValue("username"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	data := views.SignupData{Username: strings.TrimSpace(form.Username)}

	req, err := polls.ValidateSignup(form)
	if err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, views.PageSignup, "サインアップ", errorPrefix+err.Error(), data)
		return
	}

	if err := h.api.Signup(r.Context(), req); err != nil {
		h.render(w, r, failureStatus(err), views.PageSignup, "サインアップ", errorPrefix+backendMessage(err), data)
		return
	}

	slog.Info("user signed up", "username", req.Username)
	redirect(w, r, loginPath, signedUpMessage)
}

// backendMessage prefers the backend's own explanation of a failure
func backendMessage(err error) string {
	if apiErr, ok := apiclient.AsAPIError(err); ok {
		return apiErr.DetailOrMessage()
	}
	return err.Error()
}
