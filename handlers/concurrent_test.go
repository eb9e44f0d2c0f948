// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/polls"
	"github.com/danielhkuo/decidebox/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different users
// are all counted and each voter sees a successful result page
func TestConcurrentVotes(t *testing.T) {
	e := setupEnv(t)
	h := NewVotingHandler(e.api, e.views, e.cfg)

	poll := e.fb.AddPoll(models.PollDetail{
		Poll:    models.Poll{ThemeName: "同時投票テスト"},
		Choices: []models.Choice{{Text: "Option A"}, {Text: "Option B"}, {Text: "Option C"}},
	})

	numVoters := 10
	sessions := make([]*http.Cookie, numVoters)

	// Pre-create all voters
	for i := 0; i < numVoters; i++ {
		sessions[i] = e.signIn("ConcurrentVoter" + string(rune('A'+i)))
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			choice := poll.Choices[voterIdx%len(poll.Choices)].ChoiceID
			req := pollRequest(http.MethodPost, poll.ThemeID, url.Values{"choice_id": {choice}}, sessions[voterIdx])
			w := serve(h.Vote, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	stored, _ := e.fb.Poll(poll.ThemeID)
	if total := polls.TotalVotes(stored.Choices); total != numVoters {
		t.Errorf("Expected %d votes stored, got %d", numVoters, total)
	}

	// 10 voters over 3 choices: 4, 3, 3
	expected := []int{4, 3, 3}
	for i, c := range stored.Choices {
		if c.Votes != expected[i] {
			t.Errorf("Expected %d votes for %s, got %d", expected[i], c.Text, c.Votes)
		}
	}
}

// TestConcurrentPageLoads verifies the shared renderer and client can serve
// many readers at once
func TestConcurrentPageLoads(t *testing.T) {
	e := setupEnv(t)
	poll := e.fb.AddPoll(languagePoll())
	voting := NewVotingHandler(e.api, e.views, e.cfg)
	results := NewResultsHandler(e.api, e.views, e.cfg)

	var failures atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			handler, req := voting.Show, pollRequest(http.MethodGet, poll.ThemeID, nil)
			if i%2 == 1 {
				handler, req = results.GetResults, resultRequest(poll.ThemeID, "")
			}
			if w := serve(handler, req); w.Code != http.StatusOK {
				failures.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if n := failures.Load(); n != 0 {
		t.Errorf("Expected every page load to succeed, %d failed", n)
	}
	if n := e.fb.Calls(testutil.RouteGetPoll); n != 20 {
		t.Errorf("Expected 20 backend fetches, got %d", n)
	}
}
