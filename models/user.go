// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is the identity snapshot returned by the server on every successful
// login or registration. The server is authoritative: the client replaces the
// whole value on each login response and never edits it locally.
type User struct {
	// ID is the server-side identifier of the user.
	ID int32 `json:"id"`

	// Username is the unique public login name.
	Username string `json:"username"`

	// Karma is the accumulated score of the user's posts.
	Karma int32 `json:"karma"`

	// Streak is the number of consecutive days the user has posted.
	Streak int16 `json:"streak"`
}

// IsZero reports whether u is the zero identity (no user logged in).
func (u User) IsZero() bool {
	return u == User{}
}
