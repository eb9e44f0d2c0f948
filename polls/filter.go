// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"sort"

	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/models"
)

// SortOrder selects how a poll listing is ordered
type SortOrder string

const (
	// SortPopular orders by theme ID. The listing carries no vote counts,
	// so the ID stands in for popularity.
	SortPopular SortOrder = "popular"
	// SortNewest orders by creation time, newest first
	SortNewest SortOrder = "newest"
)

// SortOrders lists the orders offered in the UI
var SortOrders = []SortOrder{SortPopular, SortNewest}

// Label returns the UI name of the order
func (s SortOrder) Label() string {
	switch s {
	case SortNewest:
		return "新着順"
	default:
		return "人気順"
	}
}

// ParseSortOrder maps a query value to an order, defaulting to popular
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortNewest {
		return SortNewest
	}
	return SortPopular
}

// FilterByCategory keeps polls whose category text equals categoryText.
// The "all" sentinel and the empty string keep everything.
func FilterByCategory(list []models.Poll, categoryText string) []models.Poll {
	if categoryText == "" || categoryText == categories.AllText {
		out := make([]models.Poll, len(list))
		copy(out, list)
		return out
	}

	out := make([]models.Poll, 0, len(list))
	for _, p := range list {
		if categories.Text(p.Category) == categoryText {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a sorted copy of list
func Sort(list []models.Poll, order SortOrder) []models.Poll {
	out := make([]models.Poll, len(list))
	copy(out, list)

	switch order {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreateAt.After(out[j].CreateAt.Time)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ThemeID < out[j].ThemeID
		})
	}

	return out
}

// Listing applies the category filter and then the sort order
func Listing(list []models.Poll, categoryText string, order SortOrder) []models.Poll {
	return Sort(FilterByCategory(list, categoryText), order)
}
