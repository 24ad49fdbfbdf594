// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// Vote is the directional vote a user holds on a post.
type Vote uint8

const (
	// VoteNone means the user has not voted (or retracted the vote).
	VoteNone Vote = iota
	// VoteUp is an up-vote.
	VoteUp
	// VoteDown is a down-vote.
	VoteDown
)

// String returns the lower-case name of the vote.
func (v Vote) String() string {
	switch v {
	case VoteNone:
		return "none"
	case VoteUp:
		return "up"
	case VoteDown:
		return "down"
	default:
		return fmt.Sprintf("vote(%d)", uint8(v))
	}
}

// Valid reports whether v is one of the three defined votes.
func (v Vote) Valid() bool {
	return v <= VoteDown
}

// ParseVote converts a case-insensitive name ("up", "down", "none") into a
// [Vote]. Returns [ErrUnknownVote] for anything else.
func ParseVote(s string) (Vote, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return VoteNone, nil
	case "up", "+":
		return VoteUp, nil
	case "down", "-":
		return VoteDown, nil
	}
	return VoteNone, fmt.Errorf("%w: %q", ErrUnknownVote, s)
}
