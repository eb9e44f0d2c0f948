// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/polls"
	"github.com/danielhkuo/decidebox/views"
)

type VotingHandler struct {
	pages
}

func NewVotingHandler(api Backend, v *views.Renderer, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{pages{api: api, views: v, cfg: cfg}}
}

// Show handles GET /poll/{id}
func (h *VotingHandler) Show(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, err := h.api.GetPoll(r.Context(), pollID)
	if err != nil {
		h.render(w, r, failureStatus(err), views.PagePoll, "投票", err.Error(), nil)
		return
	}

	h.render(w, r, http.StatusOK, views.PagePoll, poll.ThemeName, "", views.PollData{
		Poll:  poll,
		Tally: polls.NewTally(poll.Choices, ""),
	})
}

// Vote handles POST /poll/{id}/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	choiceID := r.PostFormValue("choice_id")

	poll, err := h.api.GetPoll(r.Context(), pollID)
	if err != nil {
		h.render(w, r, failureStatus(err), views.PagePoll, "投票", err.Error(), nil)
		return
	}

	data := views.PollData{
		Poll:     poll,
		Tally:    polls.NewTally(poll.Choices, ""),
		Selected: choiceID,
	}

	// No selection or a stale form: nothing is sent
	if err := polls.CheckSelection(poll, choiceID); err != nil {
		data.VoteError = err.Error()
		h.render(w, r, http.StatusUnprocessableEntity, views.PagePoll, poll.ThemeName, "", data)
		return
	}

	sess := auth.SessionFromContext(r.Context())
	if err := h.api.Vote(r.Context(), sess, pollID, choiceID); err != nil {
		data.VoteError = err.Error()
		h.render(w, r, failureStatus(err), views.PagePoll, poll.ThemeName, "", data)
		return
	}

	slog.Info("vote submitted", "poll_id", pollID, "choice_id", choiceID)

	// Show our own vote right away, then prefer the backend's counts
	optimistic, _ := polls.ApplyVote(poll, choiceID)
	fetched, fetchErr := h.api.GetPoll(r.Context(), pollID)
	if fetchErr != nil {
		slog.Warn("refetch after vote failed, showing local counts", "poll_id", pollID, "error", fetchErr)
	}
	shown, fresh := polls.Reconcile(optimistic, fetched, fetchErr)

	data.Poll = shown
	data.Tally = polls.NewTally(shown.Choices, choiceID)
	data.Voted = true
	data.Stale = !fresh
	h.render(w, r, http.StatusOK, views.PagePoll, shown.ThemeName, "", data)
}
