// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/polls"
	"github.com/danielhkuo/decidebox/views"
)

const pollCreatedMessage = "投票を作成しました！"

// Form actions on the new-poll page
const (
	actionAdd    = "add"
	actionRemove = "remove:"
	actionCreate = "create"
)

type PollHandler struct {
	pages
}

func NewPollHandler(api Backend, v *views.Renderer, cfg cliparse.Config) *PollHandler {
	return &PollHandler{pages{api: api, views: v, cfg: cfg}}
}

// NewPoll handles GET /poll/new
func (h *PollHandler) NewPoll(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", polls.NewPollFormDefaults())
}

// CreatePoll handles POST /poll/new. The same form posts the add and
// remove buttons, which only edit the form and re-render it.
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	form := parseNewPollForm(r)
	action := r.PostFormValue("action")

	switch {
	case action == actionAdd:
		form.AddChoice()
		h.renderForm(w, r, http.StatusOK, "", form)
		return
	case strings.HasPrefix(action, actionRemove):
		if i, err := strconv.Atoi(strings.TrimPrefix(action, actionRemove)); err == nil {
			form.RemoveChoice(i)
		}
		h.renderForm(w, r, http.StatusOK, "", form)
		return
	case action != "" && action != actionCreate:
		h.renderForm(w, r, http.StatusBadRequest, "不明な操作です", form)
		return
	}

	req, err := polls.ValidateNewPoll(form)
	if err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, err.Error(), form)
		return
	}

	sess := auth.SessionFromContext(r.Context())
	poll, err := h.api.CreatePoll(r.Context(), sess, req)
	if err != nil {
		h.renderForm(w, r, failureStatus(err), err.Error(), form)
		return
	}

	slog.Info("poll created", "poll_id", poll.ThemeID, "choices", len(req.Choices))

	redirect(w, r, "/poll/"+url.PathEscape(poll.ThemeID), pollCreatedMessage)
}

func (h *PollHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, errMsg string, form polls.NewPollForm) {
	h.render(w, r, status, views.PageNewPoll, "投票を作成する", errMsg, views.NewPollData{
		Form:       form,
		Categories: categories.Selectable(),
	})
}

// parseNewPollForm reads the submitted form as-is, blank choices included
func parseNewPollForm(r *http.Request) polls.NewPollForm {
	_ = r.ParseForm()

	form := polls.NewPollForm{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Choices:     append([]string(nil), r.PostForm["choice"]...),
	}
	if id, err := strconv.Atoi(r.PostForm.Get("category")); err == nil {
		form.Category = categories.ID(id)
	}
	// Keep at least the two inputs the page always shows
	for len(form.Choices) < models.MinChoices {
		form.Choices = append(form.Choices, "")
	}
	return form
}
