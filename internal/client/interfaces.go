// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-feed-client/internal/engine"
	"github.com/MKhiriev/go-feed-client/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// Engine is the part of the synchronization engine the console drives.
// [*engine.Engine] implements it.
type Engine interface {
	Login(username, password string)
	Register(username, password string)
	Logout()
	FetchFeed()
	CreatePost(content string)
	Vote(postID int32, vote models.Vote)
	Reconnect()
	ForgetSession()

	Snapshot() engine.Snapshot
	Subscribe(obs engine.Observer) (cancel func())
}
