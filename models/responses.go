package models

// LoginResult is the successful outcome of a login or registration.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// FeedBatch is the successful outcome of a feed fetch: a refreshed token and
// the complete post collection in delivery order.
type FeedBatch struct {
	Token string `json:"token"`
	Posts []Post `json:"posts"`
}

// CreatedPost is the server confirmation of a newly created post.
type CreatedPost struct {
	Token string `json:"token"`
	Post  Post   `json:"post"`
}

// UserRoster is a server push carrying refreshed user records.
type UserRoster struct {
	Users []User `json:"users"`
}
