package engine

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-feed-client/internal/protocol"
)

// dispatch classifies an inbound frame and applies it to the state.
func (e *Engine) dispatch(ctx context.Context, frame []byte) {
	kind := protocol.Classify(frame)

	switch kind {
	case protocol.KindLogin:
		e.onLogin(ctx, frame)
	case protocol.KindLogout:
		e.onLogout(frame)
	case protocol.KindFetchPosts:
		e.onFetchPosts(ctx, frame)
	case protocol.KindCreatePost:
		e.onCreatePost(ctx, frame)
	case protocol.KindUserVote:
		e.onUserVote(ctx, frame)
	case protocol.KindInvalidPosts:
		e.onInvalidPosts(frame)
	case protocol.KindNewPost:
		e.onNewPost(frame)
	case protocol.KindUpdateUsers:
		e.onUpdateUsers(frame)
	case protocol.KindError:
		e.onServerError(frame)
	default:
		e.logger.Debug().Int("bytes", len(frame)).Msg("ignoring unrecognized frame")
	}
}

// rejection returns the server rejection carried by err. Any other error is
// a malformed frame; it is logged and counted and nil is returned.
func (e *Engine) rejection(kind protocol.Kind, err error) *protocol.RejectedError {
	var rejected *protocol.RejectedError
	if errors.As(err, &rejected) {
		e.opts.Metrics.Rejection(kind.String())
		return rejected
	}

	e.opts.Metrics.DecodeFailure(kind.String())
	e.logger.Warn().Err(err).Str("kind", kind.String()).Msg("discarding malformed frame")
	return nil
}

func (e *Engine) reject(rejected *protocol.RejectedError, message string) {
	e.raise(Notice{
		Kind:        NoticeRejected,
		Op:          rejected.Kind,
		Message:     message,
		Description: rejected.Description,
	})
}

func (e *Engine) onLogin(ctx context.Context, frame []byte) {
	res, err := protocol.DecodeLogin(frame)
	if err != nil {
		rejected := e.rejection(protocol.KindLogin, err)
		if rejected == nil {
			return
		}
		if e.st.authenticated {
			e.logger.Info().Str("reason", rejected.Description).Msg("login rejected while authenticated, keeping session")
			return
		}
		e.clearSession(ctx)
		e.reject(rejected, "login failed")
		return
	}

	e.st.user = res.User
	e.st.authenticated = true
	e.dirty = true
	e.persistToken(ctx, res.Token)
	e.logger.Info().Int32("user_id", res.User.ID).Msg("logged in")
}

func (e *Engine) onLogout(frame []byte) {
	if _, err := protocol.DecodeLogout(frame); err != nil {
		if rejected := e.rejection(protocol.KindLogout, err); rejected != nil {
			e.reject(rejected, "logout failed")
		}
		return
	}

	if e.st.authenticated {
		e.st.authenticated = false
		e.dirty = true
	}
	e.logger.Info().Msg("logged out")
}

func (e *Engine) onFetchPosts(ctx context.Context, frame []byte) {
	batch, err := protocol.DecodeFetchFeed(frame)
	if err != nil {
		if rejected := e.rejection(protocol.KindFetchPosts, err); rejected != nil {
			e.reject(rejected, "fetching posts failed")
		}
		return
	}

	e.persistToken(ctx, batch.Token)
	e.st.posts = uniquePosts(batch.Posts)
	e.dirty = true
	e.logger.Debug().Int("posts", len(e.st.posts)).Msg("feed replaced")
}

func (e *Engine) onCreatePost(ctx context.Context, frame []byte) {
	created, err := protocol.DecodeCreatePost(frame)
	if err != nil {
		if rejected := e.rejection(protocol.KindCreatePost, err); rejected != nil {
			e.reject(rejected, "creating post failed")
		}
		return
	}

	e.persistToken(ctx, created.Token)
	e.st.posts = upsertPost(e.st.posts, created.Post)
	e.dirty = true
	e.logger.Debug().Int32("post_id", created.Post.ID).Msg("post created")
}

func (e *Engine) onUserVote(ctx context.Context, frame []byte) {
	token, err := protocol.DecodeVote(frame)
	if err != nil {
		rejected := e.rejection(protocol.KindUserVote, err)
		if rejected == nil {
			return
		}
		pv, ok := e.popPending()
		if ok && e.opts.RollbackRejectedVotes {
			e.rollbackVote(pv)
		}
		e.reject(rejected, "vote failed")
		return
	}

	if pv, ok := e.popPending(); ok {
		e.logger.Debug().Int32("post_id", pv.PostID).Str("intent", pv.IntentID).Msg("vote acknowledged")
	}
	e.persistToken(ctx, token)
}

func (e *Engine) onInvalidPosts(frame []byte) {
	ids, err := protocol.DecodeInvalidatedIDs(frame)
	if err != nil {
		e.rejection(protocol.KindInvalidPosts, err)
		return
	}

	posts, removed := removePosts(e.st.posts, ids)
	if !removed {
		return
	}
	e.st.posts = posts
	e.dirty = true
	e.logger.Debug().Int("ids", len(ids)).Msg("posts invalidated")
}

func (e *Engine) onNewPost(frame []byte) {
	post, err := protocol.DecodeNewPost(frame)
	if err != nil {
		e.rejection(protocol.KindNewPost, err)
		return
	}

	e.st.posts = upsertPost(e.st.posts, post)
	e.dirty = true
	e.logger.Debug().Int32("post_id", post.ID).Msg("new post received")
}

// onUpdateUsers only logs: roster updates carry no state the engine owns.
func (e *Engine) onUpdateUsers(frame []byte) {
	roster, err := protocol.DecodeUpdateUsers(frame)
	if err != nil {
		e.rejection(protocol.KindUpdateUsers, err)
		return
	}
	e.logger.Debug().Int("users", len(roster.Users)).Msg("user roster update ignored")
}

func (e *Engine) onServerError(frame []byte) {
	description, err := protocol.DecodeError(frame)
	if err != nil {
		e.rejection(protocol.KindError, err)
		return
	}
	e.logger.Warn().Str("description", description).Msg("server reported an error")
}
