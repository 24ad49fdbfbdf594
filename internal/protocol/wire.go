// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/MKhiriev/go-feed-client/models"
)

// encMode produces Core Deterministic Encoding (RFC 8949 §4.2), so equal
// messages always encode to identical bytes.
var encMode cbor.EncMode

// decMode rejects duplicate map keys and caps container sizes so that a
// hostile frame cannot make the client allocate unbounded memory.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("protocol: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: 65536,
		MaxMapPairs:      1024,
		MaxNestedLevels:  16,
	}.DecMode()
	if err != nil {
		panic("protocol: CBOR decoder initialization failed: " + err.Error())
	}
}

type wireUser struct {
	ID       int32  `cbor:"1,keyasint"`
	Username string `cbor:"2,keyasint"`
	Karma    int32  `cbor:"3,keyasint"`
	Streak   int16  `cbor:"4,keyasint"`
}

type wirePost struct {
	ID      int32  `cbor:"1,keyasint"`
	UserID  int32  `cbor:"2,keyasint"`
	Content string `cbor:"3,keyasint"`
	Valid   bool   `cbor:"4,keyasint"`
	Vote    uint8  `cbor:"5,keyasint"`
}

// result is the success-or-error union carried by every response to a
// request. Exactly one of the fields must be present.
type result[T any] struct {
	Success *T      `cbor:"1,keyasint,omitempty"`
	Error   *string `cbor:"2,keyasint,omitempty"`
}

type empty struct{}

type loginSuccess struct {
	Token string   `cbor:"1,keyasint"`
	User  wireUser `cbor:"2,keyasint"`
}

type feedSuccess struct {
	Token string     `cbor:"1,keyasint"`
	Posts []wirePost `cbor:"2,keyasint"`
}

type createPostSuccess struct {
	Token string   `cbor:"1,keyasint"`
	Post  wirePost `cbor:"2,keyasint"`
}

type errorPush struct {
	Description string `cbor:"1,keyasint"`
}

// request is the payload of every client request. Fields not used by a
// particular kind are omitted on the wire.
type request struct {
	Token    string `cbor:"1,keyasint,omitempty"`
	Username string `cbor:"2,keyasint,omitempty"`
	Password string `cbor:"3,keyasint,omitempty"`
	Content  string `cbor:"4,keyasint,omitempty"`
	PostID   int32  `cbor:"5,keyasint,omitempty"`
	Vote     *uint8 `cbor:"6,keyasint,omitempty"`
}

func toModelUser(u wireUser) models.User {
	return models.User{ID: u.ID, Username: u.Username, Karma: u.Karma, Streak: u.Streak}
}

func fromModelUser(u models.User) wireUser {
	return wireUser{ID: u.ID, Username: u.Username, Karma: u.Karma, Streak: u.Streak}
}

func toModelPost(p wirePost) (models.Post, bool) {
	v := models.Vote(p.Vote)
	if !v.Valid() {
		return models.Post{}, false
	}
	return models.Post{ID: p.ID, AuthorID: p.UserID, Content: p.Content, Valid: p.Valid, Vote: v}, true
}

func fromModelPost(p models.Post) wirePost {
	return wirePost{ID: p.ID, UserID: p.AuthorID, Content: p.Content, Valid: p.Valid, Vote: uint8(p.Vote)}
}

// frame prepends the tag to the CBOR encoding of payload.
func frame(kind Kind, payload any) ([]byte, error) {
	body, err := encMode.Marshal(payload)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, byte(kind))
	return append(out, body...), nil
}

// payloadOf checks the tag of frame against want and returns the payload.
func payloadOf(frame []byte, want Kind) ([]byte, error) {
	if len(frame) < 2 {
		return nil, malformed(want, "frame too short")
	}
	if got := Kind(frame[0]); got != want {
		return nil, malformed(want, "unexpected tag "+got.String())
	}
	return frame[1:], nil
}

func decodeInto(frame []byte, want Kind, v any) error {
	payload, err := payloadOf(frame, want)
	if err != nil {
		return err
	}
	if err = decMode.Unmarshal(payload, v); err != nil {
		return malformed(want, err.Error())
	}
	return nil
}

func decodeResult[T any](frame []byte, want Kind) (T, error) {
	var zero T
	var res result[T]
	if err := decodeInto(frame, want, &res); err != nil {
		return zero, err
	}

	switch {
	case res.Success != nil && res.Error == nil:
		return *res.Success, nil
	case res.Error != nil && res.Success == nil:
		return zero, &RejectedError{Kind: want, Description: *res.Error}
	default:
		return zero, malformed(want, "result must carry exactly one of success or error")
	}
}
