// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/testutil"
)

func seedListing(e *testEnv) {
	day := func(d int) models.Timestamp {
		return models.Timestamp{Time: time.Date(2025, 9, d, 0, 0, 0, 0, time.UTC)}
	}
	two := []models.Choice{{Text: "A"}, {Text: "B"}}

	e.fb.AddPoll(models.PollDetail{Poll: models.Poll{ThemeID: "1", ThemeName: "最も好きな食べ物は？", Category: categories.Food, CreateAt: day(1)}, Choices: two})
	e.fb.AddPoll(models.PollDetail{Poll: models.Poll{ThemeID: "2", ThemeName: "好きなスポーツは？", Category: categories.Sports, CreateAt: day(3)}, Choices: two})
	e.fb.AddPoll(models.PollDetail{Poll: models.Poll{ThemeID: "3", ThemeName: "朝ごはんの定番は？", Category: categories.Food, CreateAt: day(2)}, Choices: two})
}

func TestHome(t *testing.T) {
	e := setupEnv(t)
	seedListing(e)
	h := NewBrowseHandler(e.api, e.views, e.cfg)

	t.Run("all categories", func(t *testing.T) {
		w := serve(h.Home, testutil.MakeRequest("GET", "/"))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "最も好きな食べ物は？", "好きなスポーツは？", "朝ごはんの定番は？")
	})

	t.Run("category tab", func(t *testing.T) {
		w := serve(h.Home, testutil.MakeRequest("GET", "/?category="+url.QueryEscape("食べ物")))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "最も好きな食べ物は？", "朝ごはんの定番は？")
		testutil.AssertNotContains(t, w, "好きなスポーツは？")
	})

	t.Run("unknown category shows everything", func(t *testing.T) {
		w := serve(h.Home, testutil.MakeRequest("GET", "/?category=bogus"))
		testutil.AssertContains(t, w, "好きなスポーツは？", "最も好きな食べ物は？")
	})
}

func TestHome_BackendDown(t *testing.T) {
	e := setupEnv(t)
	e.fb.Fail(testutil.RouteSearch, http.StatusInternalServerError)
	h := NewBrowseHandler(e.api, e.views, e.cfg)

	w := serve(h.Home, testutil.MakeRequest("GET", "/"))

	// The page still renders, with a banner and no cards
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "検索に失敗しました", "投票がありません")
}

func TestExplore(t *testing.T) {
	e := setupEnv(t)
	seedListing(e)
	h := NewBrowseHandler(e.api, e.views, e.cfg)

	testCases := []struct {
		name    string
		query   url.Values
		order   []string
		missing []string
	}{
		{
			name:  "popular by default",
			query: url.Values{},
			order: []string{"最も好きな食べ物は？", "好きなスポーツは？", "朝ごはんの定番は？"},
		},
		{
			name:  "newest first",
			query: url.Values{"sort": {"newest"}},
			order: []string{"好きなスポーツは？", "朝ごはんの定番は？", "最も好きな食べ物は？"},
		},
		{
			name:    "category and sort",
			query:   url.Values{"category": {"食べ物"}, "sort": {"newest"}},
			order:   []string{"朝ごはんの定番は？", "最も好きな食べ物は？"},
			missing: []string{"好きなスポーツは？"},
		},
		{
			name:    "search term",
			query:   url.Values{"q": {"好きな"}},
			order:   []string{"最も好きな食べ物は？", "好きなスポーツは？"},
			missing: []string{"朝ごはんの定番は？"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(h.Explore, testutil.MakeRequest("GET", "/explore?"+tc.query.Encode()))

			testutil.AssertStatus(t, w, http.StatusOK)
			testutil.AssertNotContains(t, w, tc.missing...)

			body := w.Body.String()
			last := -1
			for _, title := range tc.order {
				i := strings.Index(body, title)
				if i < 0 {
					t.Fatalf("Expected %q in results", title)
				}
				if i < last {
					t.Errorf("Expected %q later in the listing", title)
				}
				last = i
			}
		})
	}
}

func TestExplore_ResultCount(t *testing.T) {
	e := setupEnv(t)
	seedListing(e)
	h := NewBrowseHandler(e.api, e.views, e.cfg)

	w := serve(h.Explore, testutil.MakeRequest("GET", "/explore?category="+url.QueryEscape("食べ物")))
	testutil.AssertContains(t, w, "2件の投票")
}

func TestExplore_BackendDown(t *testing.T) {
	e := setupEnv(t)
	e.fb.Fail(testutil.RouteSearch, http.StatusBadGateway)
	h := NewBrowseHandler(e.api, e.views, e.cfg)

	w := serve(h.Explore, testutil.MakeRequest("GET", "/explore?q=x"))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "検索中にエラーが発生しました。後でもう一度お試しください。", `value="x"`)
}

func TestCategory(t *testing.T) {
	e := setupEnv(t)
	h := NewBrowseHandler(e.api, e.views, e.cfg)

	req := testutil.MakeRequest("GET", "/category/x")
	req.SetPathValue("name", "%E9%A3%9F%E3%81%B9%E7%89%A9")
	w := serve(h.Category, req)

	testutil.AssertRedirect(t, w, "/explore?category="+url.QueryEscape("食べ物"))
	if e.fb.Calls(testutil.RouteSearch) != 0 {
		t.Error("Expected no backend call for a redirect")
	}
}
