// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"fmt"
	"html/template"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/models"
)

// DateLayout is how creation dates are shown
const DateLayout = "2006年01月02日"

// shortIDLen is how many characters of an author ID are shown
const shortIDLen = 8

// Funcs returns the template helpers
func Funcs() template.FuncMap {
	return template.FuncMap{
		"categoryText": categories.Text,
		"categoryPath": CategoryPath,
		"percent":      Percent,
		"votes":        Votes,
		"fmtDate":      FormatDate,
		"shortID":      ShortID,
		"add":          func(a, b int) int { return a + b },
	}
}

// Percent formats a percentage with one decimal
func Percent(p float64) string {
	return fmt.Sprintf("%.1f", p)
}

// Votes formats a vote count with thousands separators
func Votes(n int) string {
	return humanize.Comma(int64(n))
}

// FormatDate renders a creation date, or nothing for the zero time
func FormatDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format(DateLayout)
}

// ShortID truncates an opaque ID for display
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= shortIDLen {
		return id
	}
	return string(r[:shortIDLen]) + "..."
}
