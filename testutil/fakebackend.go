// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/middleware"
	"github.com/danielhkuo/decidebox/models"
)

// SessionCookie is the cookie name the fake backend issues on login
const SessionCookie = "session"

// Route keys accepted by Fail, Respond and Calls
const (
	RouteSearch        = "GET /polls/search"
	RouteGetPoll       = "GET /polls/{id}"
	RouteCreatePoll    = "POST /polls"
	RouteVote          = "POST /polls/{id}/vote"
	RouteUserInfo      = "GET /users/me"
	RouteUserPolls     = "GET /users/me/polls"
	RouteUserVoted     = "GET /users/me/voted"
	RouteLogin         = "POST /auth/login"
	RouteSignup        = "POST /auth/signup"
	RouteUpdateProfile = "POST /users"
)

type fakeUser struct {
	models.User
	password string
}

type override struct {
	status int
	body   string
}

// FakeBackend is an in-memory implementation of the /api/v0 surface
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	polls     map[string]*models.PollDetail
	order     []string
	users     map[string]*fakeUser
	sessions  map[string]string
	authored  map[string][]string
	voted     map[string][]string
	overrides map[string]override
	calls     map[string]int

	// LastCreate is the body of the most recent create call
	LastCreate models.CreatePollRequest
	// LastProfile is the body of the most recent profile update
	LastProfile models.UpdateProfileRequest
	lastCookies []*http.Cookie
}

// NewFakeBackend starts a fake backend that is closed when t finishes
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{
		polls:     make(map[string]*models.PollDetail),
		users:     make(map[string]*fakeUser),
		sessions:  make(map[string]string),
		authored:  make(map[string][]string),
		voted:     make(map[string][]string),
		overrides: make(map[string]override),
		calls:     make(map[string]int),
	}

	r := chi.NewRouter()
	r.Route("/api/v0", func(r chi.Router) {
		fb.handle(r, RouteSearch, fb.search)
		fb.handle(r, RouteGetPoll, fb.getPoll)
		fb.handle(r, RouteCreatePoll, fb.createPoll)
		fb.handle(r, RouteVote, fb.vote)
		fb.handle(r, RouteUserInfo, fb.userInfo)
		fb.handle(r, RouteUserPolls, fb.userPolls)
		fb.handle(r, RouteUserVoted, fb.userVoted)
		fb.handle(r, RouteLogin, fb.login)
		fb.handle(r, RouteSignup, fb.signup)
		fb.handle(r, RouteUpdateProfile, fb.updateProfile)
	})

	fb.Server = httptest.NewServer(r)
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL is the backend origin, without the API prefix
func (fb *FakeBackend) URL() string {
	return fb.Server.URL
}

// handle registers h under route and applies counting and overrides
func (fb *FakeBackend) handle(r chi.Router, route string, h http.HandlerFunc) {
	method, pattern, _ := strings.Cut(route, " ")
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fb.mu.Lock()
		fb.calls[route]++
		fb.lastCookies = req.Cookies()
		o, overridden := fb.overrides[route]
		fb.mu.Unlock()

		if overridden {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(o.status)
			_, _ = w.Write([]byte(o.body))
			return
		}
		h(w, req)
	}))
}

// Fail makes route answer status with an empty body
func (fb *FakeBackend) Fail(route string, status int) {
	fb.Respond(route, status, "")
}

// Respond makes route answer status with a raw body
func (fb *FakeBackend) Respond(route string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.overrides[route] = override{status: status, body: body}
}

// Restore removes an override set by Fail or Respond
func (fb *FakeBackend) Restore(route string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	delete(fb.overrides, route)
}

// Calls returns how many requests route has received
func (fb *FakeBackend) Calls(route string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[route]
}

// LastCookies returns the cookies sent with the most recent request
func (fb *FakeBackend) LastCookies() []*http.Cookie {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.lastCookies
}

// AddPoll stores p, filling in missing IDs and timestamps
func (fb *FakeBackend) AddPoll(p models.PollDetail) models.PollDetail {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.addPollLocked(p)
}

func (fb *FakeBackend) addPollLocked(p models.PollDetail) models.PollDetail {
	if p.ThemeID == "" {
		p.ThemeID = uuid.NewString()
	}
	if p.CreateAt.IsZero() {
		p.CreateAt = models.Timestamp{Time: time.Now().UTC().Truncate(time.Second)}
	}
	if p.Category == 0 {
		p.Category = categories.General
	}
	choices := make([]models.Choice, len(p.Choices))
	copy(choices, p.Choices)
	for i := range choices {
		if choices[i].ChoiceID == "" {
			choices[i].ChoiceID = uuid.NewString()
		}
	}
	p.Choices = choices

	stored := p
	fb.polls[p.ThemeID] = &stored
	fb.order = append(fb.order, p.ThemeID)
	for name, u := range fb.users {
		if p.Author != "" && u.UserID == p.Author {
			fb.authored[name] = append(fb.authored[name], p.ThemeID)
		}
	}
	return p
}

// Poll returns a copy of the stored poll
func (fb *FakeBackend) Poll(id string) (models.PollDetail, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	p, ok := fb.polls[id]
	if !ok {
		return models.PollDetail{}, false
	}
	out := *p
	out.Choices = append([]models.Choice(nil), p.Choices...)
	return out, true
}

// AddUser registers a user
func (fb *FakeBackend) AddUser(username, password, displayname string) models.User {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	u := &fakeUser{
		User:     models.User{UserID: uuid.NewString(), Username: username, Displayname: displayname},
		password: password,
	}
	fb.users[username] = u
	return u.User
}

// Login opens a session for username and returns the cookie to send
func (fb *FakeBackend) Login(username string) *http.Cookie {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	token := uuid.NewString()
	fb.sessions[token] = username
	return &http.Cookie{Name: SessionCookie, Value: token}
}

// MarkVoted records that username took part in poll id
func (fb *FakeBackend) MarkVoted(username, id string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.voted[username] = append(fb.voted[username], id)
}

// currentUser resolves the request's session cookie
func (fb *FakeBackend) currentUser(r *http.Request) (*fakeUser, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	name, ok := fb.sessions[c.Value]
	if !ok {
		return nil, false
	}
	u, ok := fb.users[name]
	return u, ok
}

func (fb *FakeBackend) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("query"))

	fb.mu.Lock()
	themes := make([]models.Poll, 0, len(fb.order))
	for _, id := range fb.order {
		p := fb.polls[id]
		if q == "" || strings.Contains(strings.ToLower(p.ThemeName), q) {
			themes = append(themes, p.Poll)
		}
	}
	fb.mu.Unlock()

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{Themes: themes})
}

func (fb *FakeBackend) getPoll(w http.ResponseWriter, r *http.Request) {
	p, ok := fb.Poll(chi.URLParam(r, "id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

func (fb *FakeBackend) createPoll(w http.ResponseWriter, r *http.Request) {
	u, ok := fb.currentUser(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid poll")
		return
	}

	choices := make([]models.Choice, len(req.Choices))
	for i, text := range req.Choices {
		choices[i] = models.Choice{Text: text}
	}

	fb.mu.Lock()
	fb.LastCreate = req
	p := fb.addPollLocked(models.PollDetail{
		Poll: models.Poll{
			ThemeName:   req.Title,
			Description: req.Description,
			Category:    req.Category,
			Author:      u.UserID,
		},
		Choices: choices,
	})
	fb.mu.Unlock()

	middleware.JSONResponse(w, http.StatusCreated, p.Poll)
}

func (fb *FakeBackend) vote(w http.ResponseWriter, r *http.Request) {
	u, ok := fb.currentUser(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid JSON")
		return
	}

	id := chi.URLParam(r, "id")

	fb.mu.Lock()
	defer fb.mu.Unlock()

	p, ok := fb.polls[id]
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	for i := range p.Choices {
		if p.Choices[i].ChoiceID == req.ChoiceID {
			p.Choices[i].Votes++
			fb.voted[u.Username] = append(fb.voted[u.Username], id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Choice not found")
}

func (fb *FakeBackend) userInfo(w http.ResponseWriter, r *http.Request) {
	u, ok := fb.currentUser(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, u.User)
}

func (fb *FakeBackend) userPolls(w http.ResponseWriter, r *http.Request) {
	fb.userList(w, r, fb.authored)
}

func (fb *FakeBackend) userVoted(w http.ResponseWriter, r *http.Request) {
	fb.userList(w, r, fb.voted)
}

func (fb *FakeBackend) userList(w http.ResponseWriter, r *http.Request, index map[string][]string) {
	u, ok := fb.currentUser(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	fb.mu.Lock()
	themes := make([]models.Poll, 0)
	seen := make(map[string]bool)
	for _, id := range index[u.Username] {
		if p, ok := fb.polls[id]; ok && !seen[id] {
			seen[id] = true
			themes = append(themes, p.Poll)
		}
	}
	fb.mu.Unlock()

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{Themes: themes})
}

func (fb *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid JSON")
		return
	}

	fb.mu.Lock()
	u, ok := fb.users[req.Username]
	fb.mu.Unlock()
	if !ok || u.password != req.Password {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "ユーザー名またはパスワードが正しくありません")
		return
	}

	c := fb.Login(req.Username)
	c.Path = "/"
	c.HttpOnly = true
	c.Domain = "backend.internal"
	http.SetCookie(w, c)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (fb *FakeBackend) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Expected multipart form")
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Missing field")
		return
	}

	fb.mu.Lock()
	_, exists := fb.users[username]
	fb.mu.Unlock()
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "このユーザー名は既に使用されています")
		return
	}

	u := fb.AddUser(username, password, "")
	middleware.JSONResponse(w, http.StatusCreated, u)
}

func (fb *FakeBackend) updateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := fb.currentUser(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid JSON")
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.LastProfile = req

	if req.NewPassword != "" {
		if req.CurrentPassword != u.password {
			middleware.ErrorResponse(w, http.StatusBadRequest, "現在のパスワードが正しくありません")
			return
		}
		u.password = req.NewPassword
	}
	if req.Username != u.Username {
		if _, taken := fb.users[req.Username]; taken {
			middleware.ErrorResponse(w, http.StatusConflict, "このユーザー名は既に使用されています")
			return
		}
		delete(fb.users, u.Username)
		fb.authored[req.Username] = fb.authored[u.Username]
		fb.voted[req.Username] = fb.voted[u.Username]
		for token, name := range fb.sessions {
			if name == u.Username {
				fb.sessions[token] = req.Username
			}
		}
		u.Username = req.Username
		fb.users[u.Username] = u
	}
	u.Displayname = req.Displayname

	middleware.JSONResponse(w, http.StatusOK, u.User)
}
