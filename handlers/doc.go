// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the page handlers for DecideBox.

# Handler Types

Each handler is a struct holding the backend client, the template
renderer and the config:

  - BrowseHandler: Home tabs, explore search and category links
  - VotingHandler: Poll page and vote submission
  - ResultsHandler: Results page
  - PollHandler: New poll form
  - AccountHandler: Login and signup
  - MyPageHandler: My page tabs and profile editing

Handlers are created via constructor functions that accept a Backend:

	votingHandler := handlers.NewVotingHandler(client, renderer, cfg)

Backend is satisfied by *apiclient.Client. Tests swap in wrappers to
simulate backend timing.

# Errors

Backend failures arrive as *apiclient.APIError, whose Error() text is
shown to the user as-is. List pages render with an error banner and
status 200. Single-resource pages pass the backend's 4xx status through
and answer 502 for everything else. Form validation failures are 422.

# Voting Flow

	GET  /poll/{id}      → Show
	POST /poll/{id}/vote → Vote

Vote checks the selection locally before calling the backend. After a
successful vote the poll is fetched again and those counts are shown;
if the re-fetch fails the page shows the local counts plus one.

# Sessions

Login relays the backend's session cookies to the browser on this
origin. The session middleware reads them back on every request and
handlers forward them with auth.SessionFromContext.
*/
package handlers
