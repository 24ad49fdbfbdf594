// Package utils holds small helpers shared by the client packages: the
// HTTP client wrapper, intent identifiers and the session token peek.
package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every HTTP request of the client.
const UserAgent = "go-feed-client"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client that identifies itself with
// [UserAgent] and accepts binary protocol frames.
func NewHTTPClient() *HTTPClient {
	c := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/octet-stream")
	return &HTTPClient{Client: c}
}
