// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/testutil"
)

func resultRequest(id, voted string) *http.Request {
	path := "/poll/" + id + "/result"
	if voted != "" {
		path += "?voted=" + voted
	}
	req := testutil.MakeRequest("GET", path)
	req.SetPathValue("id", id)
	return req
}

func TestGetResults(t *testing.T) {
	e := setupEnv(t)
	poll := e.fb.AddPoll(languagePoll())
	h := NewResultsHandler(e.api, e.views, e.cfg)

	t.Run("summary", func(t *testing.T) {
		w := serve(h.GetResults, resultRequest(poll.ThemeID, ""))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w,
			"総投票数: 781票",
			"最多票を獲得したのは <strong>JavaScript</strong> 245票 (31.4%)",
			"投票ページに戻る",
		)
		testutil.AssertNotContains(t, w, "（あなたの投票）")
	})

	t.Run("own vote highlighted", func(t *testing.T) {
		w := serve(h.GetResults, resultRequest(poll.ThemeID, choiceID(t, poll, "Java")))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "Java（あなたの投票）")
		testutil.AssertNotContains(t, w, "JavaScript（あなたの投票）")
	})
}

func TestGetResults_Tie(t *testing.T) {
	e := setupEnv(t)
	poll := e.fb.AddPoll(models.PollDetail{
		Poll:    models.Poll{ThemeName: "犬派？猫派？"},
		Choices: []models.Choice{{Text: "犬", Votes: 50}, {Text: "猫", Votes: 50}},
	})
	h := NewResultsHandler(e.api, e.views, e.cfg)

	w := serve(h.GetResults, resultRequest(poll.ThemeID, ""))

	// The later choice takes a tie
	testutil.AssertContains(t, w, "<strong>猫</strong>", "(50.0%)")
}

func TestGetResults_NoVotes(t *testing.T) {
	e := setupEnv(t)
	poll := e.fb.AddPoll(models.PollDetail{
		Poll:    models.Poll{ThemeName: "新しい投票"},
		Choices: []models.Choice{{Text: "はい"}, {Text: "いいえ"}},
	})
	h := NewResultsHandler(e.api, e.views, e.cfg)

	w := serve(h.GetResults, resultRequest(poll.ThemeID, ""))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "総投票数: 0票", "0票 (0.0%)")
}

func TestGetResults_NotFound(t *testing.T) {
	e := setupEnv(t)
	h := NewResultsHandler(e.api, e.views, e.cfg)

	w := serve(h.GetResults, resultRequest("missing", ""))

	testutil.AssertStatus(t, w, http.StatusNotFound)
	testutil.AssertContains(t, w, "投票の取得に失敗しました")
}
