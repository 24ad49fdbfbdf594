// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"fmt"

	"github.com/MKhiriev/go-feed-client/models"
)

// EncodeLoginWithToken encodes a session-resume request.
func EncodeLoginWithToken(token string) ([]byte, error) {
	return frame(KindLoginWithToken, request{Token: token})
}

// EncodeLoginWithCredentials encodes a username/password login request.
func EncodeLoginWithCredentials(username, password string) ([]byte, error) {
	return frame(KindLoginWithCredentials, request{Username: username, Password: password})
}

// EncodeRegistration encodes an account registration request. The server
// answers it with a [KindLogin] response.
func EncodeRegistration(username, password string) ([]byte, error) {
	return frame(KindRegister, request{Username: username, Password: password})
}

// EncodeLogout encodes a logout request for the session identified by token.
func EncodeLogout(token string) ([]byte, error) {
	return frame(KindLogoutRequest, request{Token: token})
}

// EncodeFetchFeed encodes a request for the complete current feed.
func EncodeFetchFeed(token string) ([]byte, error) {
	return frame(KindFetchFeed, request{Token: token})
}

// EncodeCreatePost encodes a new post. The content length limit is not
// checked here; see [models.MaxContentLength].
func EncodeCreatePost(token, content string) ([]byte, error) {
	return frame(KindCreatePostRequest, request{Token: token, Content: content})
}

// EncodeVote encodes a vote on postID. Returns [ErrInvalidVote] when vote is
// not one of the defined values.
func EncodeVote(token string, postID int32, vote models.Vote) ([]byte, error) {
	if !vote.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVote, vote)
	}
	v := uint8(vote)
	return frame(KindVote, request{Token: token, PostID: postID, Vote: &v})
}
