// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types exchanged with the polling backend.

# Request Types

Types sent to the backend:

  - CreatePollRequest: title, description, category, choices
  - VoteRequest: choice_id
  - LoginRequest: username, password
  - SignupRequest: username, password (multipart form)
  - UpdateProfileRequest: username, displayname, password change fields

# Response Types

Types decoded from the backend:

  - PollResponse: themes (list of Poll)
  - ErrorResponse: detail

# Domain Types

  - Poll: theme_id, theme_name, create_at, category, author, description
  - Choice: choice_id, text, votes
  - PollDetail: Poll plus its choices
  - User: user_id, username, displayname

# Validation

Every type carries validate struct tags. Validate checks a value against
them; decoded responses go through it before the client trusts them, and
forms go through it before anything is sent.

	if err := models.Validate(req); err != nil {
		msgs := models.TranslateError(err) // Japanese messages
	}

Field names in messages come from the label tag. Two custom tags exist:

	category  a registered category other than the "all" filter
	uniqueci  no two slice entries equal after trim + lowercase

# Timestamps

Timestamp accepts RFC 3339 and the backend's naive ISO-8601 output.
Unparseable values decode to the zero time instead of failing the response.
*/
package models
