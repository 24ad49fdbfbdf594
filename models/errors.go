package models

import "errors"

// ErrUnknownVote is returned by [ParseVote] for unrecognised vote names.
var ErrUnknownVote = errors.New("unknown vote")
