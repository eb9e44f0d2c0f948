// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"

	"github.com/danielhkuo/decidebox/models"
)

var (
	ErrNoSelection   = errors.New("選択肢を選んでください")
	ErrUnknownChoice = errors.New("選択肢が見つかりません")
)

// CheckSelection verifies choiceID names one of the poll's choices
func CheckSelection(poll models.PollDetail, choiceID string) error {
	if choiceID == "" {
		return ErrNoSelection
	}
	for _, c := range poll.Choices {
		if c.ChoiceID == choiceID {
			return nil
		}
	}
	return ErrUnknownChoice
}

// ApplyVote returns a copy of poll with one more vote on choiceID.
// poll itself is not modified.
func ApplyVote(poll models.PollDetail, choiceID string) (models.PollDetail, error) {
	if err := CheckSelection(poll, choiceID); err != nil {
		return poll, err
	}

	out := poll
	out.Choices = make([]models.Choice, len(poll.Choices))
	copy(out.Choices, poll.Choices)
	for i := range out.Choices {
		if out.Choices[i].ChoiceID == choiceID {
			out.Choices[i].Votes++
		}
	}
	return out, nil
}

// Reconcile picks the counts to show after a successful vote. A re-fetched
// poll is server truth and wins; when the re-fetch failed the optimistic
// counts are kept.
func Reconcile(optimistic, fetched models.PollDetail, fetchErr error) (models.PollDetail, bool) {
	if fetchErr != nil {
		return optimistic, false
	}
	return fetched, true
}
