// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"
	"strings"

	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/models"
)

var (
	ErrTitleRequired   = errors.New("タイトルを入力してください")
	ErrTooFewChoices   = errors.New("最低2つの選択肢が必要です")
	ErrTooManyChoices  = errors.New("選択肢は最大10個までです")
	ErrDuplicateChoice = errors.New("重複する選択肢があります")
)

// NewPollForm is the new-poll form as submitted, blank inputs included
type NewPollForm struct {
	Title       string
	Description string
	Category    categories.ID
	Choices     []string
}

// NewPollFormDefaults returns an empty form with two blank choices
func NewPollFormDefaults() NewPollForm {
	return NewPollForm{
		Category: categories.General,
		Choices:  []string{"", ""},
	}
}

// AddChoice appends a blank input unless the form already has the maximum
func (f *NewPollForm) AddChoice() {
	if len(f.Choices) < models.MaxChoices {
		f.Choices = append(f.Choices, "")
	}
}

// RemoveChoice drops input i unless the form is at the minimum
func (f *NewPollForm) RemoveChoice(i int) {
	if len(f.Choices) <= models.MinChoices || i < 0 || i >= len(f.Choices) {
		return
	}
	f.Choices = append(f.Choices[:i:i], f.Choices[i+1:]...)
}

// CanAddChoice reports whether another input may be added
func (f NewPollForm) CanAddChoice() bool {
	return len(f.Choices) < models.MaxChoices
}

// CanRemoveChoice reports whether an input may be removed
func (f NewPollForm) CanRemoveChoice() bool {
	return len(f.Choices) > models.MinChoices
}

// ValidateNewPoll checks the form and builds the request to send.
// Blank choices are dropped and every value is trimmed. Checks run in a
// fixed order: title, choice count, duplicates, then the remaining limits.
func ValidateNewPoll(f NewPollForm) (models.CreatePollRequest, error) {
	req := models.CreatePollRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Category:    f.Category,
		Choices:     nonBlank(f.Choices),
	}

	verrs := models.FieldErrors(models.Validate(req))
	if len(verrs) == 0 {
		return req, nil
	}

	priority := []struct {
		field string
		tag   string
		err   error
	}{
		{"Title", "required", ErrTitleRequired},
		{"Choices", "min", ErrTooFewChoices},
		{"Choices", "max", ErrTooManyChoices},
		{"Choices", "uniqueci", ErrDuplicateChoice},
	}
	for _, p := range priority {
		for _, fe := range verrs {
			if fe.StructField() == p.field && fe.Tag() == p.tag {
				return models.CreatePollRequest{}, p.err
			}
		}
	}

	return models.CreatePollRequest{}, errors.New(models.Translate(verrs[0]))
}

func nonBlank(choices []string) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
