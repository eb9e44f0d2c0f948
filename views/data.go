// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/models"
	"github.com/danielhkuo/decidebox/polls"
)

// Option is one entry of a tab strip or select box
type Option struct {
	Value    string
	Label    string
	Selected bool
}

type HomeData struct {
	Tabs  []Option
	Polls []models.Poll
}

type ExploreData struct {
	Query      string
	Categories []Option
	Sorts      []Option
	Polls      []models.Poll
}

// PollData backs both the pre-vote form and the voted state
type PollData struct {
	Poll      models.PollDetail
	Tally     polls.Tally
	Voted     bool
	Selected  string
	VoteError string
	// Stale is set when the counts shown are the optimistic ones
	Stale bool
}

type ResultData struct {
	Poll  models.PollDetail
	Tally polls.Tally
}

type NewPollData struct {
	Form       polls.NewPollForm
	Categories []categories.Category
}

type LoginData struct {
	Username string
}

type SignupData struct {
	Username string
}

// Tabs on the my page
const (
	TabMyPolls      = "my-polls"
	TabParticipated = "participated"
)

type MyPageData struct {
	User      *models.User
	UserError string
	Tab       string

	Created           []models.Poll
	CreatedError      string
	Participated      []models.Poll
	ParticipatedError string
}

type ProfileData struct {
	Form models.UpdateProfileRequest
}

type ErrorData struct {
	Status  int
	Message string
}
