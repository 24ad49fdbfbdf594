// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the credential store, the websocket connection manager, the
// synchronization engine and a line-oriented console into a single process
// lifecycle. The console is a thin presentation layer: it turns typed
// commands into engine intents and prints the updates the engine publishes.
package client
