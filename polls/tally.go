// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import "github.com/danielhkuo/decidebox/models"

// ChoiceResult is a choice with its share of the total
type ChoiceResult struct {
	models.Choice
	Percentage float64
	Winner     bool
	Mine       bool
}

// Tally summarizes a poll's vote counts
type Tally struct {
	Total   int
	Choices []ChoiceResult
	// Winner is nil when the poll has no choices
	Winner *ChoiceResult
}

// TotalVotes sums the vote counts of choices
func TotalVotes(choices []models.Choice) int {
	total := 0
	for _, c := range choices {
		total += c.Votes
	}
	return total
}

// Percentage returns votes as a percentage of total, or 0 when total is 0
func Percentage(votes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(votes) / float64(total) * 100
}

// WinnerIndex returns the index of the choice with the most votes.
// A later choice wins a tie. Returns -1 for no choices.
func WinnerIndex(choices []models.Choice) int {
	if len(choices) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(choices); i++ {
		if choices[i].Votes >= choices[best].Votes {
			best = i
		}
	}
	return best
}

// NewTally computes totals, percentages and the winner. mine marks the
// choice the current user voted for; empty marks nothing.
func NewTally(choices []models.Choice, mine string) Tally {
	t := Tally{
		Total:   TotalVotes(choices),
		Choices: make([]ChoiceResult, len(choices)),
	}

	winner := WinnerIndex(choices)
	for i, c := range choices {
		t.Choices[i] = ChoiceResult{
			Choice:     c,
			Percentage: Percentage(c.Votes, t.Total),
			Winner:     i == winner,
			Mine:       mine != "" && c.ChoiceID == mine,
		}
	}
	if winner >= 0 {
		t.Winner = &t.Choices[winner]
	}

	return t
}
