package engine

import "github.com/MKhiriev/go-feed-client/models"

// pendingVote is a vote applied locally and sent, awaiting its UserVote
// response. Responses carry no correlation id, so they are matched to
// pending votes in send order.
type pendingVote struct {
	IntentID  string
	PostID    int32
	Prior     models.Vote
	Requested models.Vote
}

func (e *Engine) pushPending(pv pendingVote) {
	e.pending = append(e.pending, pv)
	e.dirty = true
}

func (e *Engine) popPending() (pendingVote, bool) {
	if len(e.pending) == 0 {
		return pendingVote{}, false
	}
	pv := e.pending[0]
	e.pending = e.pending[1:]
	e.dirty = true
	return pv, true
}

// rollbackVote restores the prior vote of pv if the post still shows the
// vote that was rejected.
func (e *Engine) rollbackVote(pv pendingVote) {
	i := indexOf(e.st.posts, pv.PostID)
	if i < 0 || e.st.posts[i].Vote != pv.Requested {
		return
	}
	e.st.posts[i].Vote = pv.Prior
	e.dirty = true
	e.logger.Debug().
		Int32("post_id", pv.PostID).
		Str("intent", pv.IntentID).
		Stringer("vote", pv.Prior).
		Msg("rejected vote rolled back")
}
