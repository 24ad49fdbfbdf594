// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import "fmt"

// Kind is the leading type tag of a frame.
type Kind uint8

// Client to server requests.
const (
	KindLoginWithToken       Kind = 0x01
	KindLoginWithCredentials Kind = 0x02
	KindRegister             Kind = 0x03
	KindLogoutRequest        Kind = 0x04
	KindFetchFeed            Kind = 0x05
	KindCreatePostRequest    Kind = 0x06
	KindVote                 Kind = 0x07
)

// Server to client responses and pushes.
const (
	KindUnrecognized Kind = 0x00

	KindLogin        Kind = 0x81
	KindLogout       Kind = 0x82
	KindFetchPosts   Kind = 0x83
	KindCreatePost   Kind = 0x84
	KindUserVote     Kind = 0x85
	KindInvalidPosts Kind = 0x86
	KindNewPost      Kind = 0x87
	KindUpdateUsers  Kind = 0x88
	KindError        Kind = 0x8F
)

var kindNames = map[Kind]string{
	KindUnrecognized:         "unrecognized",
	KindLoginWithToken:       "login_with_token",
	KindLoginWithCredentials: "login_with_credentials",
	KindRegister:             "register",
	KindLogoutRequest:        "logout_request",
	KindFetchFeed:            "fetch_feed",
	KindCreatePostRequest:    "create_post_request",
	KindVote:                 "vote",
	KindLogin:                "login",
	KindLogout:               "logout",
	KindFetchPosts:           "fetch_posts",
	KindCreatePost:           "create_post",
	KindUserVote:             "user_vote",
	KindInvalidPosts:         "invalid_posts",
	KindNewPost:              "new_post",
	KindUpdateUsers:          "update_users",
	KindError:                "error",
}

// String returns the snake_case name of the kind, used in logs and metrics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(0x%02x)", uint8(k))
}

// IsServerKind reports whether k is sent by the server.
func (k Kind) IsServerKind() bool {
	switch k {
	case KindLogin, KindLogout, KindFetchPosts, KindCreatePost, KindUserVote,
		KindInvalidPosts, KindNewPost, KindUpdateUsers, KindError:
		return true
	}
	return false
}

// IsRequestKind reports whether k is sent by the client.
func (k Kind) IsRequestKind() bool {
	return k >= KindLoginWithToken && k <= KindVote
}

// Classify returns the server message kind of frame by inspecting its leading
// tag. Empty frames, unknown tags and client request tags classify as
// [KindUnrecognized]. Classify does not validate the payload.
func Classify(frame []byte) Kind {
	if len(frame) < 1 {
		return KindUnrecognized
	}
	k := Kind(frame[0])
	if !k.IsServerKind() {
		return KindUnrecognized
	}
	return k
}
