package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is wrapped by every decode error caused by a frame that is
	// empty, truncated, carries an unexpected tag or an undecodable payload.
	ErrMalformed = errors.New("malformed frame")

	// ErrInvalidVote is returned when encoding a vote outside the defined
	// three values.
	ErrInvalidVote = errors.New("invalid vote value")
)

// RejectedError is returned by decoders when the frame is well formed but
// the server reports that the request failed.
type RejectedError struct {
	// Kind is the response kind that carried the rejection.
	Kind Kind
	// Description is the human-readable reason supplied by the server.
	Description string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Kind, e.Description)
}

func malformed(kind Kind, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, kind, reason)
}
