// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"github.com/MKhiriev/go-feed-client/models"
)

// DecodeLogin decodes a [KindLogin] response, which answers both login and
// registration requests.
func DecodeLogin(frame []byte) (models.LoginResult, error) {
	res, err := decodeResult[loginSuccess](frame, KindLogin)
	if err != nil {
		return models.LoginResult{}, err
	}
	return models.LoginResult{Token: res.Token, User: toModelUser(res.User)}, nil
}

// DecodeLogout decodes a [KindLogout] response. It returns true on success; a
// rejected logout is reported as a [*RejectedError].
func DecodeLogout(frame []byte) (bool, error) {
	if _, err := decodeResult[empty](frame, KindLogout); err != nil {
		return false, err
	}
	return true, nil
}

// DecodeFetchFeed decodes a [KindFetchPosts] response. Posts keep the order in
// which the server delivered them.
func DecodeFetchFeed(frame []byte) (models.FeedBatch, error) {
	res, err := decodeResult[feedSuccess](frame, KindFetchPosts)
	if err != nil {
		return models.FeedBatch{}, err
	}

	posts := make([]models.Post, 0, len(res.Posts))
	for _, wp := range res.Posts {
		p, ok := toModelPost(wp)
		if !ok {
			return models.FeedBatch{}, malformed(KindFetchPosts, "post carries invalid vote")
		}
		posts = append(posts, p)
	}

	return models.FeedBatch{Token: res.Token, Posts: posts}, nil
}

// DecodeCreatePost decodes a [KindCreatePost] confirmation.
func DecodeCreatePost(frame []byte) (models.CreatedPost, error) {
	res, err := decodeResult[createPostSuccess](frame, KindCreatePost)
	if err != nil {
		return models.CreatedPost{}, err
	}

	p, ok := toModelPost(res.Post)
	if !ok {
		return models.CreatedPost{}, malformed(KindCreatePost, "post carries invalid vote")
	}
	return models.CreatedPost{Token: res.Token, Post: p}, nil
}

// DecodeVote decodes a [KindUserVote] acknowledgment and returns the
// refreshed session token.
func DecodeVote(frame []byte) (string, error) {
	return decodeResult[string](frame, KindUserVote)
}

// DecodeInvalidatedIDs decodes a [KindInvalidPosts] push: the ids of posts
// whose lifetime has elapsed on the server.
func DecodeInvalidatedIDs(frame []byte) ([]int32, error) {
	var ids []int32
	if err := decodeInto(frame, KindInvalidPosts, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// DecodeNewPost decodes a [KindNewPost] push.
func DecodeNewPost(frame []byte) (models.Post, error) {
	var wp wirePost
	if err := decodeInto(frame, KindNewPost, &wp); err != nil {
		return models.Post{}, err
	}

	p, ok := toModelPost(wp)
	if !ok {
		return models.Post{}, malformed(KindNewPost, "post carries invalid vote")
	}
	return p, nil
}

// DecodeUpdateUsers decodes a [KindUpdateUsers] push.
func DecodeUpdateUsers(frame []byte) (models.UserRoster, error) {
	var users []wireUser
	if err := decodeInto(frame, KindUpdateUsers, &users); err != nil {
		return models.UserRoster{}, err
	}

	roster := models.UserRoster{Users: make([]models.User, 0, len(users))}
	for _, u := range users {
		roster.Users = append(roster.Users, toModelUser(u))
	}
	return roster, nil
}

// DecodeError decodes a [KindError] push and returns the server's
// description.
func DecodeError(frame []byte) (string, error) {
	var e errorPush
	if err := decodeInto(frame, KindError, &e); err != nil {
		return "", err
	}
	return e.Description, nil
}
