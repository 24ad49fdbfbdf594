// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"github.com/MKhiriev/go-feed-client/models"
)

// The functions in this file produce and consume the server side of the
// protocol. The client never calls them; they exist so that fakes and
// diagnostics tools speak exactly the same encoding.

// Request is a decoded client request. Only the fields relevant to Kind are
// populated.
type Request struct {
	Kind     Kind
	Token    string
	Username string
	Password string
	Content  string
	PostID   int32
	Vote     models.Vote
}

// DecodeRequest decodes any client request frame.
func DecodeRequest(frame []byte) (Request, error) {
	if len(frame) < 2 {
		return Request{}, malformed(KindUnrecognized, "frame too short")
	}

	kind := Kind(frame[0])
	if !kind.IsRequestKind() {
		return Request{}, malformed(kind, "not a request tag")
	}

	var r request
	if err := decodeInto(frame, kind, &r); err != nil {
		return Request{}, err
	}

	out := Request{
		Kind:     kind,
		Token:    r.Token,
		Username: r.Username,
		Password: r.Password,
		Content:  r.Content,
		PostID:   r.PostID,
	}
	if r.Vote != nil {
		out.Vote = models.Vote(*r.Vote)
		if !out.Vote.Valid() {
			return Request{}, malformed(kind, "invalid vote")
		}
	}
	return out, nil
}

// EncodeRejection encodes a failed response of the given kind carrying
// description.
func EncodeRejection(kind Kind, description string) ([]byte, error) {
	return frame(kind, result[empty]{Error: &description})
}

// EncodeLoginResponse encodes a successful [KindLogin] response.
func EncodeLoginResponse(res models.LoginResult) ([]byte, error) {
	return frame(KindLogin, result[loginSuccess]{Success: &loginSuccess{
		Token: res.Token,
		User:  fromModelUser(res.User),
	}})
}

// EncodeLogoutResponse encodes a successful [KindLogout] response.
func EncodeLogoutResponse() ([]byte, error) {
	return frame(KindLogout, result[empty]{Success: &empty{}})
}

// EncodeFeedResponse encodes a successful [KindFetchPosts] response.
func EncodeFeedResponse(batch models.FeedBatch) ([]byte, error) {
	posts := make([]wirePost, 0, len(batch.Posts))
	for _, p := range batch.Posts {
		posts = append(posts, fromModelPost(p))
	}
	return frame(KindFetchPosts, result[feedSuccess]{Success: &feedSuccess{Token: batch.Token, Posts: posts}})
}

// EncodeCreatePostResponse encodes a successful [KindCreatePost] response.
func EncodeCreatePostResponse(created models.CreatedPost) ([]byte, error) {
	return frame(KindCreatePost, result[createPostSuccess]{Success: &createPostSuccess{
		Token: created.Token,
		Post:  fromModelPost(created.Post),
	}})
}

// EncodeVoteResponse encodes a successful [KindUserVote] acknowledgment.
func EncodeVoteResponse(token string) ([]byte, error) {
	return frame(KindUserVote, result[string]{Success: &token})
}

// EncodeInvalidatedIDs encodes a [KindInvalidPosts] push.
func EncodeInvalidatedIDs(ids []int32) ([]byte, error) {
	if ids == nil {
		ids = []int32{}
	}
	return frame(KindInvalidPosts, ids)
}

// EncodeNewPost encodes a [KindNewPost] push.
func EncodeNewPost(p models.Post) ([]byte, error) {
	return frame(KindNewPost, fromModelPost(p))
}

// EncodeUpdateUsers encodes a [KindUpdateUsers] push.
func EncodeUpdateUsers(roster models.UserRoster) ([]byte, error) {
	users := make([]wireUser, 0, len(roster.Users))
	for _, u := range roster.Users {
		users = append(users, fromModelUser(u))
	}
	return frame(KindUpdateUsers, users)
}

// EncodeError encodes a [KindError] push.
func EncodeError(description string) ([]byte, error) {
	return frame(KindError, errorPush{Description: description})
}
