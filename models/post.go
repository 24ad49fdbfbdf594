// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MaxContentLength is the maximum number of characters a post may contain.
// The limit is enforced by whatever collects the text from the user before it
// reaches the synchronization engine.
const MaxContentLength = 140

// Post is a short-lived message in the feed together with the vote the
// current user holds on it.
type Post struct {
	// ID is the server-assigned identifier, unique within a feed.
	ID int32 `json:"id"`

	// AuthorID is the [User.ID] of the author.
	AuthorID int32 `json:"author_id"`

	// Content is the message text.
	Content string `json:"content"`

	// Valid is false once the server considers the post expired. The client
	// carries the flag but relies on invalidation messages for removal.
	Valid bool `json:"valid"`

	// Vote is the current user's vote on this post.
	Vote Vote `json:"vote"`
}
