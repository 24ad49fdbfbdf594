// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer message strings used by the
// feed client console.
//
// All Msg* constants are human-readable strings written to the console in
// response to a command. Keeping them in one place ensures consistent wording
// and lets tests match on them.
package app

const (
	// MsgUsage lists the console commands.
	MsgUsage = `commands:
  login <username> <password>     log in
  register <username> <password>  create an account and log in
  logout                          end the session on the server
  feed                            fetch all posts
  post <text>                     publish a post
  vote <post id> <up|down|none>   vote on a post
  reconnect                       reconnect after the connection gave up
  forget                          remove the stored session token
  show                            print the current state
  help                            print this help
  quit                            exit`

	// MsgUnknownCommand is printed for anything that is not a command.
	MsgUnknownCommand = "unknown command, type help"

	// MsgMissingArguments is printed when a command lacks arguments.
	MsgMissingArguments = "missing arguments"

	// MsgEmptyPost is printed when post is issued without text.
	MsgEmptyPost = "post text is empty"

	// MsgPostTooLong is printed when the text exceeds the content limit.
	MsgPostTooLong = "post text is longer than %d characters"

	// MsgInvalidPostID is printed when the post id is not a number.
	MsgInvalidPostID = "invalid post id"

	// MsgUnknownPost is printed when voting on a post that is not held.
	MsgUnknownPost = "no such post, run feed first"

	// MsgNoSession is printed for an authenticated command without a stored
	// session.
	MsgNoSession = "not logged in"

	// MsgNotExhausted is printed when reconnect is requested while the
	// connection is still being managed.
	MsgNotExhausted = "connection is %s, reconnect is only possible after it gave up"
)
