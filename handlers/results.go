// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/polls"
	"github.com/danielhkuo/decidebox/views"
)

type ResultsHandler struct {
	pages
}

func NewResultsHandler(api Backend, v *views.Renderer, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{pages{api: api, views: v, cfg: cfg}}
}

// GetResults handles GET /poll/{id}/result?voted={choice_id}
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	poll, err := h.api.GetPoll(r.Context(), pollID)
	if err != nil {
		h.render(w, r, failureStatus(err), views.PageResult, "投票結果", err.Error(), nil)
		return
	}

	h.render(w, r, http.StatusOK, views.PageResult, "投票結果", "", views.ResultData{
		Poll:  poll,
		Tally: polls.NewTally(poll.Choices, r.URL.Query().Get("voted")),
	})
}
