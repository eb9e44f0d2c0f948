// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package categories

// ID identifies a category on the wire.
type ID int

const (
	All           ID = 1
	General       ID = 2
	Food          ID = 3
	Lifestyle     ID = 4
	Technology    ID = 5
	Entertainment ID = 6
	Sports        ID = 7
	Politics      ID = 8
)

// UnknownText is shown for IDs outside the registry
const UnknownText = "不明なカテゴリー"

// Category pairs an ID with its display name
type Category struct {
	ID   ID
	Name string
}

// registry is ordered by ID
var registry = []Category{
	{All, "すべて"},
	{General, "一般"},
	{Food, "食べ物"},
	{Lifestyle, "ライフスタイル"},
	{Technology, "テクノロジー"},
	{Entertainment, "エンタメ"},
	{Sports, "スポーツ"},
	{Politics, "政治"},
}

// AllText is the display name of the "all" filter sentinel
var AllText = Text(All)

// Text returns the display name for id
func Text(id ID) string {
	for _, c := range registry {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownText
}

// Lookup maps a display name back to its ID
func Lookup(name string) (ID, bool) {
	for _, c := range registry {
		if c.Name == name {
			return c.ID, true
		}
	}
	return 0, false
}

// Valid reports whether id is in the registry
func Valid(id ID) bool {
	return Text(id) != UnknownText
}

// List returns every category in ID order
func List() []Category {
	out := make([]Category, len(registry))
	copy(out, registry)
	return out
}

// Names returns every display name in ID order
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, c := range registry {
		names = append(names, c.Name)
	}
	return names
}

// Selectable returns the categories a new poll can be filed under.
// The "all" sentinel is a filter, not a category.
func Selectable() []Category {
	out := make([]Category, 0, len(registry)-1)
	for _, c := range registry {
		if c.ID != All {
			out = append(out, c)
		}
	}
	return out
}
