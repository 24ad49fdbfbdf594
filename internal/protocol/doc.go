// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package protocol implements the binary wire codec spoken between the feed
// client and the feed server.
//
// Every frame is a single type tag byte followed by a CBOR payload encoded
// with Core Deterministic Encoding. The tag is inspected by [Classify] without
// decoding the payload; each server message kind has a dedicated decode
// function.
//
// Decoders never panic on hostile input. A frame that cannot be interpreted
// yields an error wrapping [ErrMalformed]; a well-formed response in which the
// server reports a failure yields a [*RejectedError]. Callers distinguish the
// two with [errors.Is] and [errors.As].
package protocol
