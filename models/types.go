// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"github.com/danielhkuo/decidebox/categories"
)

// Poll limits shared by the form and the request schema
const (
	MinChoices        = 2
	MaxChoices        = 10
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxChoiceLen      = 100
)

// Request types

type CreatePollRequest struct {
	Title       string        `json:"title" label:"タイトル" validate:"required,max=100"`
	Description string        `json:"description,omitempty" label:"説明" validate:"max=500"`
	Category    categories.ID `json:"category" label:"カテゴリー" validate:"category"`
	Choices     []string      `json:"choices" label:"選択肢" validate:"min=2,max=10,uniqueci,dive,required,max=100"`
}

type VoteRequest struct {
	ChoiceID string `json:"choice_id"`
}

type LoginRequest struct {
	Username string `json:"username" label:"ユーザーネーム" validate:"required"`
	Password string `json:"password" label:"パスワード" validate:"required"`
}

// SignupRequest is sent as multipart form data, not JSON
type SignupRequest struct {
	Username string `label:"ユーザーネーム" validate:"required"`
	Password string `label:"パスワード" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Username        string `json:"username" label:"ユーザー名" validate:"min=3"`
	Displayname     string `json:"displayname" label:"表示名" validate:"required"`
	CurrentPassword string `json:"currentPassword,omitempty" label:"現在のパスワード" validate:"required_with=NewPassword"`
	NewPassword     string `json:"newPassword,omitempty" label:"新しいパスワード" validate:"omitempty,eqfield=ConfirmPassword"`
	ConfirmPassword string `json:"confirmPassword,omitempty" label:"確認パスワード"`
}

// Response types

type PollResponse struct {
	Themes []Poll `json:"themes" validate:"dive"`
}

// ErrorResponse is the backend's error body
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Domain types

type Poll struct {
	ThemeID     string        `json:"theme_id" validate:"required"`
	ThemeName   string        `json:"theme_name" validate:"required"`
	CreateAt    Timestamp     `json:"create_at"`
	Category    categories.ID `json:"category"`
	Author      string        `json:"author"`
	Description string        `json:"description,omitempty"`
}

// CategoryText returns the display name of the poll's category
func (p Poll) CategoryText() string {
	return categories.Text(p.Category)
}

type Choice struct {
	ChoiceID string `json:"choice_id" validate:"required"`
	Text     string `json:"text" validate:"required"`
	Votes    int    `json:"votes" validate:"min=0"`
}

// PollDetail is a poll together with its choices
type PollDetail struct {
	Poll
	Choices []Choice `json:"choices" validate:"min=2,max=10,dive"`
}

type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username" validate:"required"`
	Displayname string `json:"displayname,omitempty"`
}

// DisplayName falls back to the username when no display name is set
func (u User) DisplayName() string {
	if u.Displayname != "" {
		return u.Displayname
	}
	return u.Username
}
