package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-feed-client/internal/protocol"
	"github.com/MKhiriev/go-feed-client/internal/transport"
	"github.com/MKhiriev/go-feed-client/models"
)

// Snapshot is an immutable view of the engine state. Callers must not
// modify Posts.
type Snapshot struct {
	// Version increases with every published snapshot.
	Version uint64

	Phase         transport.Phase
	Authenticated bool
	User          models.User

	// Session is the current session token, empty when absent.
	Session string
	// SessionExpiresAt is read from the token when it is a JWT carrying an
	// exp claim, zero otherwise.
	SessionExpiresAt time.Time

	// Posts in display order, oldest first.
	Posts []models.Post

	// PendingVotes counts votes sent and not yet acknowledged.
	PendingVotes int
}

// Post returns the held post with the given id.
func (s Snapshot) Post(id int32) (models.Post, bool) {
	if i := indexOf(s.Posts, id); i >= 0 {
		return s.Posts[i], true
	}
	return models.Post{}, false
}

// HasSession reports whether a session token is held.
func (s Snapshot) HasSession() bool {
	return s.Session != ""
}

// NoticeKind classifies a [Notice].
type NoticeKind uint8

const (
	// NoticeRejected is a request the server answered with an error.
	NoticeRejected NoticeKind = iota + 1
	// NoticeTransport is a connection problem the user should know about.
	NoticeTransport
	// NoticeStorage is a failure of the credential store.
	NoticeStorage
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeRejected:
		return "rejected"
	case NoticeTransport:
		return "transport"
	case NoticeStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Notice is a user-facing outcome that is not itself a state change.
type Notice struct {
	Kind NoticeKind
	// Op is the response kind the notice relates to, if any.
	Op protocol.Kind
	// Message is a short human-readable summary.
	Message string
	// Description carries the server's or the system's explanation.
	Description string
}

func (n Notice) String() string {
	if n.Description == "" {
		return n.Message
	}
	return fmt.Sprintf("%s: %s", n.Message, n.Description)
}

// Update is delivered to observers after each step that changed the state
// or raised a notice.
type Update struct {
	Snapshot Snapshot
	// Notices raised by the step, in order. Empty when the step only
	// changed state.
	Notices []Notice
}

// Observer receives updates on the engine goroutine. It must return quickly
// and must not block on the engine.
type Observer func(Update)

// state is owned by the event loop.
type state struct {
	version          uint64
	phase            transport.Phase
	authenticated    bool
	user             models.User
	token            string
	sessionExpiresAt time.Time
	posts            []models.Post
}

func (st *state) snapshot(pending int) Snapshot {
	st.version++
	return Snapshot{
		Version:          st.version,
		Phase:            st.phase,
		Authenticated:    st.authenticated,
		User:             st.user,
		Session:          st.token,
		SessionExpiresAt: st.sessionExpiresAt,
		Posts:            slices.Clone(st.posts),
		PendingVotes:     pending,
	}
}
