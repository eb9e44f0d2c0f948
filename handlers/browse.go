// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/danielhkuo/decidebox/categories"
	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/polls"
	"github.com/danielhkuo/decidebox/views"
)

// searchFailedMessage replaces the client message on the explore page
const searchFailedMessage = "検索中にエラーが発生しました。後でもう一度お試しください。"

type BrowseHandler struct {
	pages
}

func NewBrowseHandler(api Backend, v *views.Renderer, cfg cliparse.Config) *BrowseHandler {
	return &BrowseHandler{pages{api: api, views: v, cfg: cfg}}
}

// Home handles GET /
func (h *BrowseHandler) Home(w http.ResponseWriter, r *http.Request) {
	category := categoryParam(r)

	data := views.HomeData{}
	for _, name := range categories.Names() {
		data.Tabs = append(data.Tabs, views.Option{Value: name, Label: name, Selected: name == category})
	}

	resp, err := h.api.SearchPolls(r.Context(), "")
	if err != nil {
		h.render(w, r, http.StatusOK, views.PageHome, "", err.Error(), data)
		return
	}

	data.Polls = polls.FilterByCategory(resp.Themes, category)
	h.render(w, r, http.StatusOK, views.PageHome, "", "", data)
}

// Explore handles GET /explore?q=&category=&sort=
func (h *BrowseHandler) Explore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	category := categoryParam(r)
	order := polls.ParseSortOrder(q.Get("sort"))

	data := views.ExploreData{Query: query}
	for _, name := range categories.Names() {
		data.Categories = append(data.Categories, views.Option{Value: name, Label: name, Selected: name == category})
	}
	for _, s := range polls.SortOrders {
		data.Sorts = append(data.Sorts, views.Option{Value: string(s), Label: s.Label(), Selected: s == order})
	}

	resp, err := h.api.SearchPolls(r.Context(), query)
	if err != nil {
		slog.Warn("search failed", "query", query, "error", err)
		h.render(w, r, http.StatusOK, views.PageExplore, "探す", searchFailedMessage, data)
		return
	}

	data.Polls = polls.Listing(resp.Themes, category, order)
	h.render(w, r, http.StatusOK, views.PageExplore, "探す", "", data)
}

// Category handles GET /category/{name} by forwarding to the explore filter
func (h *BrowseHandler) Category(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	http.Redirect(w, r, "/explore?category="+url.QueryEscape(name), http.StatusSeeOther)
}

// categoryParam reads ?category=, falling back to the "all" filter for
// missing or unknown names
func categoryParam(r *http.Request) string {
	name := r.URL.Query().Get("category")
	if _, ok := categories.Lookup(name); !ok {
		return categories.AllText
	}
	return name
}
