// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/polls"
	"github.com/danielhkuo/decidebox/views"
)

const profileUpdatedMessage = "プロフィールを更新しました"

type MyPageHandler struct {
	pages
}

func NewMyPageHandler(api Backend, v *views.Renderer, cfg cliparse.Config) *MyPageHandler {
	return &MyPageHandler{pages{api: api, views: v, cfg: cfg}}
}

// Show handles GET /mypage?tab=
func (h *MyPageHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := auth.SessionFromContext(ctx)

	data := views.MyPageData{Tab: views.TabMyPolls}
	if r.URL.Query().Get("tab") == views.TabParticipated {
		data.Tab = views.TabParticipated
	}

	// Sections fail independently and keep their own error. Only an
	// expired session fails the group, which cancels the other fetches.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := h.api.UserInfo(gctx, sess)
		if sessionExpired(err) {
			return err
		}
		if err != nil {
			data.UserError = err.Error()
			return nil
		}
		data.User = &user
		return nil
	})
	g.Go(func() error {
		created, err := h.api.UserPolls(gctx, sess)
		if err != nil {
			data.CreatedError = err.Error()
			return nil
		}
		data.Created = created.Themes
		return nil
	})
	g.Go(func() error {
		participated, err := h.api.UserVotedPolls(gctx, sess)
		if err != nil {
			data.ParticipatedError = err.Error()
			return nil
		}
		data.Participated = participated.Themes
		return nil
	})

	if err := g.Wait(); err != nil {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, views.PageMyPage, "マイページ", "", data)
}

// EditForm handles GET /mypage/edit
func (h *MyPageHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, err := h.api.UserInfo(r.Context(), auth.SessionFromContext(r.Context()))
	if sessionExpired(err) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		h.render(w, r, failureStatus(err), views.PageMyPageEdit, "プロフィールを編集", err.Error(), views.ProfileData{})
		return
	}

	h.render(w, r, http.StatusOK, views.PageMyPageEdit, "プロフィールを編集", "", views.ProfileData{
		Form: models.UpdateProfileRequest{Username: user.Username, Displayname: user.Displayname},
	})
}

// Edit handles POST /mypage/edit
func (h *MyPageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	req := models.UpdateProfileRequest{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Displayname:     strings.TrimSpace(r.PostFormValue("displayname")),
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	// Passwords are never echoed back into the form
	data := views.ProfileData{Form: models.UpdateProfileRequest{Username: req.Username, Displayname: req.Displayname}}

	if err := polls.ValidateProfile(req); err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, views.PageMyPageEdit, "プロフィールを編集", err.Error(), data)
		return
	}

	if err := h.api.UpdateProfile(r.Context(), auth.SessionFromContext(r.Context()), req); err != nil {
		h.render(w, r, failureStatus(err), views.PageMyPageEdit, "プロフィールを編集", err.Error(), data)
		return
	}

	slog.Info("profile updated", "username", req.Username, "password_changed", req.NewPassword != "")
	redirect(w, r, mypagePath, profileUpdatedMessage)
}
