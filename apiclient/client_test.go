// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/testutil"
)

func setup(t *testing.T) (*testutil.FakeBackend, *Client) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	return fb, New(fb.URL(), nil)
}

func twoChoicePoll(title string) models.PollDetail {
	return models.PollDetail{
		Poll:    models.Poll{ThemeName: title, Category: categories.Food},
		Choices: []models.Choice{{Text: "寿司", Votes: 3}, {Text: "ラーメン", Votes: 1}},
	}
}

func TestNew(t *testing.T) {
	c := New("http://backend:8000/", nil)
	assert.Equal(t, "http://backend:8000/api/v0", c.BaseURL())
	assert.Equal(t, http.DefaultClient, c.httpClient)
}

func TestSearchPolls(t *testing.T) {
	fb, c := setup(t)
	fb.AddPoll(twoChoicePoll("昼ごはん"))
	fb.AddPoll(twoChoicePoll("晩ごはん"))
	fb.AddPoll(twoChoicePoll("Best editor"))

	all, err := c.SearchPolls(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all.Themes, 3)

	some, err := c.SearchPolls(context.Background(), "ごはん")
	require.NoError(t, err)
	assert.Len(t, some.Themes, 2)
	for _, p := range some.Themes {
		assert.Equal(t, categories.Food, p.Category)
		assert.False(t, p.CreateAt.IsZero())
	}
}

func TestSearchPolls_QueryParam(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"themes":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	_, err := c.SearchPolls(context.Background(), "")
	require.NoError(t, err)
	_, err = c.SearchPolls(context.Background(), "a b&c")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "query=a+b%26c"}, queries)
}

func TestGetPoll(t *testing.T) {
	fb, c := setup(t)
	stored := fb.AddPoll(twoChoicePoll("昼ごはん"))

	p, err := c.GetPoll(context.Background(), stored.ThemeID)
	require.NoError(t, err)
	assert.Equal(t, "昼ごはん", p.ThemeName)
	require.Len(t, p.Choices, 2)
	assert.Equal(t, 3, p.Choices[0].Votes)
}

func TestGetPoll_PathEscaped(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).GetPoll(context.Background(), "a/b")
	require.Error(t, err)
	assert.Equal(t, "/api/v0/polls/a%2Fb", path)
}

// Every wrapped endpoint surfaces its own message on 404 and 500
func TestErrorMessagesVerbatim(t *testing.T) {
	sess := auth.Session{Cookies: []*http.Cookie{{Name: "session", Value: "x"}}}

	calls := []struct {
		route string
		op    Op
		call  func(c *Client) error
	}{
		{testutil.RouteSearch, OpSearchPolls, func(c *Client) error { _, err := c.SearchPolls(context.Background(), ""); return err }},
		{testutil.RouteGetPoll, OpGetPoll, func(c *Client) error { _, err := c.GetPoll(context.Background(), "p1"); return err }},
		{testutil.RouteCreatePoll, OpCreatePoll, func(c *Client) error {
			_, err := c.CreatePoll(context.Background(), sess, models.CreatePollRequest{Title: "t", Category: categories.General, Choices: []string{"a", "b"}})
			return err
		}},
		{testutil.RouteVote, OpVote, func(c *Client) error { return c.Vote(context.Background(), sess, "p1", "c1") }},
		{testutil.RouteUserInfo, OpUserInfo, func(c *Client) error { _, err := c.UserInfo(context.Background(), sess); return err }},
		{testutil.RouteUserPolls, OpUserPolls, func(c *Client) error { _, err := c.UserPolls(context.Background(), sess); return err }},
		{testutil.RouteUserVoted, OpUserVotedPolls, func(c *Client) error { _, err := c.UserVotedPolls(context.Background(), sess); return err }},
		{testutil.RouteLogin, OpLogin, func(c *Client) error {
			_, err := c.Login(context.Background(), models.LoginRequest{Username: "u", Password: "p"})
			return err
		}},
		{testutil.RouteSignup, OpSignup, func(c *Client) error {
			return c.Signup(context.Background(), models.SignupRequest{Username: "u", Password: "password"})
		}},
		{testutil.RouteUpdateProfile, OpUpdateProfile, func(c *Client) error {
			return c.UpdateProfile(context.Background(), sess, models.UpdateProfileRequest{Username: "user", Displayname: "d"})
		}},
	}

	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		for _, tc := range calls {
			t.Run(string(tc.op)+"/"+http.StatusText(status), func(t *testing.T) {
				fb, c := setup(t)
				fb.Fail(tc.route, status)

				err := tc.call(c)
				require.Error(t, err)
				assert.Equal(t, tc.op.Message(), err.Error())

				apiErr, ok := AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, tc.op, apiErr.Op)
				assert.Equal(t, status, apiErr.StatusCode)
				assert.Equal(t, status == http.StatusNotFound, apiErr.NotFound())
				assert.Equal(t, 1, fb.Calls(tc.route))
			})
		}
	}
}

func TestErrorDetail(t *testing.T) {
	fb, c := setup(t)
	fb.Respond(testutil.RouteLogin, http.StatusUnauthorized, `{"detail":"ユーザーが存在しません"}`)

	_, err := c.Login(context.Background(), models.LoginRequest{Username: "u", Password: "p"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "ユーザーが存在しません", apiErr.Detail)
	assert.Equal(t, "ユーザーが存在しません", apiErr.DetailOrMessage())
	assert.True(t, apiErr.Unauthorized())

	// A non-FastAPI body leaves the detail empty
	fb.Respond(testutil.RouteLogin, http.StatusBadGateway, `<html>bad gateway</html>`)
	_, err = c.Login(context.Background(), models.LoginRequest{Username: "u", Password: "p"})
	apiErr, ok = AsAPIError(err)
	require.True(t, ok)
	assert.Empty(t, apiErr.Detail)
	assert.Equal(t, "ログインに失敗しました", apiErr.DetailOrMessage())
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"themes": [`},
		{"missing theme_id", `{"themes":[{"theme_name":"x","category":2}]}`},
		{"bad category", `{"themes":[{"theme_id":"1","theme_name":"x","category":"food"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, c := setup(t)
			fb.Respond(testutil.RouteSearch, http.StatusOK, tt.body)

			_, err := c.SearchPolls(context.Background(), "")
			require.Error(t, err)
			assert.Equal(t, "検索に失敗しました", err.Error())

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusOK, apiErr.StatusCode)
			assert.NotNil(t, errors.Unwrap(apiErr))
		})
	}
}

func TestGetPoll_RejectsSingleChoice(t *testing.T) {
	fb, c := setup(t)
	fb.Respond(testutil.RouteGetPoll, http.StatusOK,
		`{"theme_id":"1","theme_name":"x","category":2,"choices":[{"choice_id":"a","text":"A","votes":1}]}`)

	_, err := c.GetPoll(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, "投票の取得に失敗しました", err.Error())
	assert.NotEmpty(t, models.FieldErrors(errors.Unwrap(err)))
}

func TestGetPoll_LenientFields(t *testing.T) {
	fb, c := setup(t)
	fb.Respond(testutil.RouteGetPoll, http.StatusOK,
		`{"theme_id":"1","theme_name":"x","category":"3","create_at":"2025-06-01T12:30:00.123456",`+
			`"choices":[{"choice_id":"a","text":"A","votes":1},{"choice_id":"b","text":"B","votes":0}]}`)

	p, err := c.GetPoll(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, categories.Food, p.Category)
	assert.Equal(t, 2025, p.CreateAt.Year())
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).SearchPolls(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "検索に失敗しました", err.Error())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Zero(t, apiErr.StatusCode)
	assert.Error(t, apiErr.Err)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(srv.URL, &http.Client{Timeout: 50 * time.Millisecond})
	_, err := c.GetPoll(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, "投票の取得に失敗しました", err.Error())
}

func TestContextCancelled(t *testing.T) {
	_, c := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchPolls(ctx, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreatePoll(t *testing.T) {
	fb, c := setup(t)
	u := fb.AddUser("taro", "password1", "")
	sess := auth.Session{Cookies: []*http.Cookie{fb.Login("taro")}}

	req := models.CreatePollRequest{
		Title:    "好きな季節",
		Category: categories.Lifestyle,
		Choices:  []string{"春", "夏", "秋", "冬"},
	}
	p, err := c.CreatePoll(context.Background(), sess, req)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ThemeID)
	assert.Equal(t, u.UserID, p.Author)
	assert.Equal(t, req, fb.LastCreate)

	stored, ok := fb.Poll(p.ThemeID)
	require.True(t, ok)
	assert.Len(t, stored.Choices, 4)

	mine, err := c.UserPolls(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, mine.Themes, 1)
	assert.Equal(t, p.ThemeID, mine.Themes[0].ThemeID)
}

func TestCreatePoll_RequiresSession(t *testing.T) {
	_, c := setup(t)

	_, err := c.CreatePoll(context.Background(), auth.Session{}, models.CreatePollRequest{
		Title: "t", Category: categories.General, Choices: []string{"a", "b"},
	})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.Unauthorized())
	assert.Equal(t, "投票の作成に失敗しました", err.Error())
}

func TestVote(t *testing.T) {
	fb, c := setup(t)
	fb.AddUser("taro", "password1", "")
	cookie := fb.Login("taro")
	sess := auth.Session{Cookies: []*http.Cookie{cookie}}
	p := fb.AddPoll(twoChoicePoll("昼ごはん"))

	require.NoError(t, c.Vote(context.Background(), sess, p.ThemeID, p.Choices[1].ChoiceID))

	// The session cookie reached the backend
	sent := fb.LastCookies()
	require.Len(t, sent, 1)
	assert.Equal(t, cookie.Value, sent[0].Value)

	after, err := c.GetPoll(context.Background(), p.ThemeID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Choices[0].Votes)
	assert.Equal(t, 2, after.Choices[1].Votes)

	voted, err := c.UserVotedPolls(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, voted.Themes, 1)

	err = c.Vote(context.Background(), sess, p.ThemeID, "nope")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "投票に失敗しました", err.Error())
}

func TestUserInfo(t *testing.T) {
	fb, c := setup(t)
	fb.AddUser("taro", "password1", "山田太郎")
	sess := auth.Session{Cookies: []*http.Cookie{fb.Login("taro")}}

	u, err := c.UserInfo(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "taro", u.Username)
	assert.Equal(t, "山田太郎", u.DisplayName())

	_, err = c.UserInfo(context.Background(), auth.Session{})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.Unauthorized())
}

func TestLogin(t *testing.T) {
	fb, c := setup(t)
	fb.AddUser("taro", "password1", "")

	cookies, err := c.Login(context.Background(), models.LoginRequest{Username: "taro", Password: "password1"})
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, testutil.SessionCookie, cookies[0].Name)

	u, err := c.UserInfo(context.Background(), auth.Session{Cookies: cookies})
	require.NoError(t, err)
	assert.Equal(t, "taro", u.Username)

	_, err = c.Login(context.Background(), models.LoginRequest{Username: "taro", Password: "wrong"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.NotEmpty(t, apiErr.Detail)
}

func TestSignup(t *testing.T) {
	fb, c := setup(t)

	require.NoError(t, c.Signup(context.Background(), models.SignupRequest{Username: "hanako", Password: "password1"}))

	// The account works for login
	_, err := c.Login(context.Background(), models.LoginRequest{Username: "hanako", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, 1, fb.Calls(testutil.RouteSignup))

	err = c.Signup(context.Background(), models.SignupRequest{Username: "hanako", Password: "password2"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "登録に失敗しました", err.Error())
}

func TestSignup_Multipart(t *testing.T) {
	var contentType, username string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = r.ParseMultipartForm(1 << 20)
		username = r.FormValue("username")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := New(srv.URL, srv.Client()).Signup(context.Background(), models.SignupRequest{Username: "jiro", Password: "password1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data"))
	assert.Equal(t, "jiro", username)
}

func TestUpdateProfile(t *testing.T) {
	fb, c := setup(t)
	fb.AddUser("taro", "password1", "")
	sess := auth.Session{Cookies: []*http.Cookie{fb.Login("taro")}}

	req := models.UpdateProfileRequest{
		Username:        "taro2",
		Displayname:     "タロウ",
		CurrentPassword: "password1",
		NewPassword:     "password2",
		ConfirmPassword: "password2",
	}
	require.NoError(t, c.UpdateProfile(context.Background(), sess, req))
	assert.Equal(t, req, fb.LastProfile)

	u, err := c.UserInfo(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "taro2", u.Username)
	assert.Equal(t, "タロウ", u.Displayname)

	_, err = c.Login(context.Background(), models.LoginRequest{Username: "taro2", Password: "password2"})
	assert.NoError(t, err)
}
