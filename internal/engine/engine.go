// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package engine implements the client synchronization engine.
//
// The engine owns the session, the current user and the post collection.
// Every user intent and every connection event becomes a step executed on a
// single event loop goroutine (see [Engine.Run]), so steps never interleave.
// After each step that changed something, an immutable [Snapshot] is
// published and observers are notified.
//
// Authenticated intents are silently ignored when no session token is
// stored. Server rejections, transport exhaustion and storage failures are
// reported as [Notice] values attached to updates; they never surface as
// returned errors.
package engine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/internal/metrics"
	"github.com/MKhiriev/go-feed-client/internal/protocol"
	"github.com/MKhiriev/go-feed-client/internal/store"
	"github.com/MKhiriev/go-feed-client/internal/transport"
	"github.com/MKhiriev/go-feed-client/internal/utils"
	"github.com/MKhiriev/go-feed-client/models"
)

const defaultQueueSize = 256

// Options tunes an [Engine]. The zero value is usable.
type Options struct {
	// RollbackRejectedVotes restores a post's previous vote when the server
	// rejects the vote. Off by default: a rejected vote keeps its optimistic
	// value and only raises a notice.
	RollbackRejectedVotes bool

	// Authenticator, when set, carries login and registration while the
	// connection is not open.
	Authenticator Authenticator

	// IDs generates pending-vote identifiers. Defaults to UUIDv7.
	IDs IDGenerator

	// Metrics may be nil.
	Metrics *metrics.Metrics

	// QueueSize bounds the number of queued steps.
	QueueSize int
}

// Engine is the synchronization engine. Its exported methods are safe for
// concurrent use; intents are queued and applied in order by Run.
type Engine struct {
	conn   Connection
	store  store.CredentialStore
	opts   Options
	logger *logger.Logger

	events  chan func(ctx context.Context)
	done    chan struct{}
	running atomic.Bool
	current atomic.Pointer[Snapshot]

	obsMu     sync.Mutex
	observers map[uint64]Observer
	nextObsID uint64

	// owned by the loop goroutine
	st      state
	pending []pendingVote
	dirty   bool
	notices []Notice
}

// New creates an engine that sends through conn and keeps the session token
// in credentials.
func New(conn Connection, credentials store.CredentialStore, opts Options, logger *logger.Logger) *Engine {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.IDs == nil {
		opts.IDs = utils.NewIntentIDGenerator("vote")
	}

	e := &Engine{
		conn:      conn,
		store:     credentials,
		opts:      opts,
		logger:    logger,
		events:    make(chan func(ctx context.Context), opts.QueueSize),
		done:      make(chan struct{}),
		observers: make(map[uint64]Observer),
	}
	e.st.phase = conn.Phase()
	e.current.Store(&Snapshot{Phase: e.st.phase})
	return e
}

// Run executes queued steps until ctx is cancelled. The stored session
// token is loaded first. Run returns [ErrAlreadyRunning] if called twice.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(e.done)
	ctx = e.logger.WithContext(ctx)

	e.loadSession(ctx)
	e.commit()
	e.logger.Info().Msg("synchronization engine started")

	for {
		select {
		case <-ctx.Done():
			e.logger.Info().Msg("synchronization engine stopped")
			return nil
		case step := <-e.events:
			step(ctx)
			e.commit()
		}
	}
}

// Snapshot returns a copy of the latest published state.
func (e *Engine) Snapshot() Snapshot {
	snap := *e.current.Load()
	snap.Posts = slices.Clone(snap.Posts)
	return snap
}

// Subscribe registers obs for every future update and returns a function
// that removes it.
func (e *Engine) Subscribe(obs Observer) (cancel func()) {
	e.obsMu.Lock()
	id := e.nextObsID
	e.nextObsID++
	e.observers[id] = obs
	e.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.obsMu.Lock()
			delete(e.observers, id)
			e.obsMu.Unlock()
		})
	}
}

// ── intents ──────────────────────────────────────────────────────────────────

// Login authenticates with a username and password.
func (e *Engine) Login(username, password string) {
	e.post(func(ctx context.Context) {
		frame, err := protocol.EncodeLoginWithCredentials(username, password)
		if err != nil {
			e.logger.Err(err).Str("func", "*Engine.Login").Msg("error encoding login")
			return
		}
		e.sendCredentials(ctx, protocol.KindLoginWithCredentials, frame)
	})
}

// Register creates an account and logs in.
func (e *Engine) Register(username, password string) {
	e.post(func(ctx context.Context) {
		frame, err := protocol.EncodeRegistration(username, password)
		if err != nil {
			e.logger.Err(err).Str("func", "*Engine.Register").Msg("error encoding registration")
			return
		}
		e.sendCredentials(ctx, protocol.KindRegister, frame)
	})
}

// Logout asks the server to end the session.
func (e *Engine) Logout() {
	e.post(func(ctx context.Context) {
		token, ok := e.session(ctx, protocol.KindLogoutRequest)
		if !ok {
			return
		}
		frame, err := protocol.EncodeLogout(token)
		if err != nil {
			e.logger.Err(err).Str("func", "*Engine.Logout").Msg("error encoding logout")
			return
		}
		e.send(protocol.KindLogoutRequest, frame)
	})
}

// FetchFeed requests the complete post collection.
func (e *Engine) FetchFeed() {
	e.post(func(ctx context.Context) {
		token, ok := e.session(ctx, protocol.KindFetchFeed)
		if !ok {
			return
		}
		frame, err := protocol.EncodeFetchFeed(token)
		if err != nil {
			e.logger.Err(err).Str("func", "*Engine.FetchFeed").Msg("error encoding fetch")
			return
		}
		e.send(protocol.KindFetchFeed, frame)
	})
}

// CreatePost submits a new post. The post appears once the server confirms
// it. The length limit of [models.MaxContentLength] is the caller's to
// enforce.
func (e *Engine) CreatePost(content string) {
	e.post(func(ctx context.Context) {
		token, ok := e.session(ctx, protocol.KindCreatePostRequest)
		if !ok {
			return
		}
		frame, err := protocol.EncodeCreatePost(token, content)
		if err != nil {
			e.logger.Err(err).Str("func", "*Engine.CreatePost").Msg("error encoding post")
			return
		}
		e.send(protocol.KindCreatePostRequest, frame)
	})
}

// Vote sets the user's vote on a held post. Repeating the current vote, or
// voting on a post that is not held, does nothing. The new vote is applied
// locally as soon as the frame is sent.
func (e *Engine) Vote(postID int32, vote models.Vote) {
	e.post(func(ctx context.Context) {
		if !vote.Valid() {
			e.logger.Warn().Int32("post_id", postID).Stringer("vote", vote).Msg("ignoring invalid vote")
			return
		}

		token, ok := e.session(ctx, protocol.KindVote)
		if !ok {
			return
		}

		i := indexOf(e.st.posts, postID)
		if i < 0 {
			e.logger.Debug().Int32("post_id", postID).Msg("vote on unknown post ignored")
			return
		}
		prior := e.st.posts[i].Vote
		if prior == vote {
			e.logger.Debug().Int32("post_id", postID).Stringer("vote", vote).Msg("repeat vote suppressed")
			return
		}

		frame, err := protocol.EncodeVote(token, postID, vote)
		if err != nil {
			e.logger.Err(err).Str("func", "*Engine.Vote").Msg("error encoding vote")
			return
		}
		if !e.send(protocol.KindVote, frame) {
			return
		}

		e.st.posts[i].Vote = vote
		e.pushPending(pendingVote{
			IntentID:  e.opts.IDs.Generate(),
			PostID:    postID,
			Prior:     prior,
			Requested: vote,
		})
	})
}

// Reconnect asks the connection manager to start over after it gave up.
// It has no effect unless the connection is exhausted.
func (e *Engine) Reconnect() {
	e.post(func(context.Context) {
		if !e.conn.Reconnect() {
			e.logger.Debug().Stringer("phase", e.conn.Phase()).Msg("reconnect ignored: not exhausted")
			return
		}
		e.setPhase(transport.PhaseConnecting)
	})
}

// ForgetSession removes the stored session token. Use it when the user
// wants this device to stop resuming the session.
func (e *Engine) ForgetSession() {
	e.post(func(ctx context.Context) {
		e.clearSession(ctx)
		if e.st.authenticated {
			e.st.authenticated = false
			e.dirty = true
		}
	})
}

// ── loop plumbing ────────────────────────────────────────────────────────────

// post queues step for the loop. It reports false once the loop has stopped.
func (e *Engine) post(step func(ctx context.Context)) bool {
	select {
	case <-e.done:
		return false
	default:
	}

	select {
	case e.events <- step:
		return true
	case <-e.done:
		return false
	}
}

// commit publishes a snapshot and notifies observers if the last step
// changed the state or raised a notice.
func (e *Engine) commit() {
	if !e.dirty && len(e.notices) == 0 {
		return
	}

	snap := e.st.snapshot(len(e.pending))
	e.current.Store(&snap)
	update := Update{Snapshot: snap, Notices: e.notices}
	e.dirty = false
	e.notices = nil

	e.opts.Metrics.SetPosts(len(snap.Posts))

	e.obsMu.Lock()
	observers := make([]Observer, 0, len(e.observers))
	for _, obs := range e.observers {
		observers = append(observers, obs)
	}
	e.obsMu.Unlock()

	for _, obs := range observers {
		obs(update)
	}
}

func (e *Engine) raise(n Notice) {
	e.notices = append(e.notices, n)
	e.opts.Metrics.Notice(n.Kind.String())
	e.logger.Info().Stringer("notice", n.Kind).Str("kind", n.Op.String()).Msg(n.String())
}

func (e *Engine) setPhase(p transport.Phase) {
	if e.st.phase != p {
		e.st.phase = p
		e.dirty = true
	}
}

func (e *Engine) send(kind protocol.Kind, frame []byte) bool {
	if !e.conn.Send(frame) {
		e.logger.Debug().Str("kind", kind.String()).Msg("frame dropped")
		return false
	}
	e.logger.Debug().Str("kind", kind.String()).Int("bytes", len(frame)).Msg("frame sent")
	return true
}

// sendCredentials sends a login or registration frame over the websocket,
// or over the HTTP fallback when the connection is not open.
func (e *Engine) sendCredentials(ctx context.Context, kind protocol.Kind, frame []byte) {
	auth := e.opts.Authenticator
	if auth == nil || e.conn.Phase() == transport.PhaseOpen {
		e.send(kind, frame)
		return
	}

	e.logger.Info().Str("kind", kind.String()).Msg("connection not open, using http login")
	go func() {
		log := logger.FromContext(ctx)
		resp, err := auth.Authenticate(ctx, frame)
		if err != nil {
			if ctx.Err() != nil {
				log.Debug().Str("kind", kind.String()).Msg("http login abandoned")
				return
			}
			log.Warn().Err(err).Str("kind", kind.String()).Msg("http login failed")
			e.post(func(context.Context) {
				e.raise(Notice{
					Kind:        NoticeTransport,
					Op:          protocol.KindLogin,
					Message:     "login request failed",
					Description: err.Error(),
				})
			})
			return
		}
		e.post(func(ctx context.Context) { e.dispatch(ctx, resp) })
	}()
}

// ── session ──────────────────────────────────────────────────────────────────

func (e *Engine) loadSession(ctx context.Context) {
	token, err := e.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			e.logger.Err(err).Str("func", "*Engine.loadSession").Msg("error reading stored session")
		}
		return
	}
	e.setToken(token)
}

// session returns the stored token for an authenticated intent. A missing
// token makes the intent a silent no-op.
func (e *Engine) session(ctx context.Context, kind protocol.Kind) (string, bool) {
	token, err := e.store.Get(ctx)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		e.logger.Debug().Str("kind", kind.String()).Msg("no session, intent ignored")
		return "", false
	case err != nil:
		e.logger.Err(err).Str("kind", kind.String()).Msg("error reading session, intent ignored")
		return "", false
	}
	return token, true
}

// persistToken stores a refreshed token returned by the server. The held
// token only changes once the store accepted it.
func (e *Engine) persistToken(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := e.store.Set(ctx, token); err != nil {
		e.logger.Err(err).Str("func", "*Engine.persistToken").Msg("error saving session")
		e.raise(Notice{Kind: NoticeStorage, Message: "could not save session", Description: err.Error()})
		return
	}
	e.setToken(token)
}

func (e *Engine) clearSession(ctx context.Context) {
	if err := e.store.Clear(ctx); err != nil {
		e.logger.Err(err).Str("func", "*Engine.clearSession").Msg("error clearing session")
		e.raise(Notice{Kind: NoticeStorage, Message: "could not clear session", Description: err.Error()})
	}
	e.setToken("")
}

func (e *Engine) setToken(token string) {
	if e.st.token == token {
		return
	}
	e.st.token = token
	e.st.sessionExpiresAt = time.Time{}
	e.dirty = true

	if token == "" {
		return
	}
	if exp, err := utils.PeekTokenExpiry(token); err == nil {
		e.st.sessionExpiresAt = exp
		e.logger.Debug().Time("expires_at", exp).Msg("session token refreshed")
	}
}
