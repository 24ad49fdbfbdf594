package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/MKhiriev/go-feed-client/internal/app"
	"github.com/MKhiriev/go-feed-client/internal/engine"
	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/internal/transport"
	"github.com/MKhiriev/go-feed-client/models"
)

// Console reads commands line by line and prints engine updates.
type Console struct {
	engine Engine
	in     io.Reader
	logger *logger.Logger

	mu            sync.Mutex
	out           io.Writer
	lastPhase     transport.Phase
	authenticated bool
}

// NewConsole creates a console reading commands from in and writing to out.
func NewConsole(engine Engine, in io.Reader, out io.Writer, logger *logger.Logger) *Console {
	snap := engine.Snapshot()
	return &Console{
		engine:        engine,
		in:            in,
		out:           out,
		logger:        logger,
		lastPhase:     snap.Phase,
		authenticated: snap.Authenticated,
	}
}

// Run processes commands until quit, end of input or ctx cancellation.
func (c *Console) Run(ctx context.Context) error {
	cancel := c.engine.Subscribe(c.onUpdate)
	defer cancel()

	c.println(app.MsgUsage)

	lines := make(chan string)
	go c.read(ctx, lines)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				c.logger.Debug().Msg("console input closed")
				return nil
			}
			if !c.execute(line) {
				c.logger.Info().Msg("quit requested")
				return nil
			}
		}
	}
}

func (c *Console) read(ctx context.Context, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.logger.Err(err).Str("func", "*Console.read").Msg("error reading console input")
	}
}

// execute runs one command line. It reports false when the console should
// stop.
func (c *Console) execute(line string) bool {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "help", "?":
		c.println(app.MsgUsage)
	case "login", "register":
		if len(args) < 2 {
			c.println(app.MsgMissingArguments)
			return true
		}
		if cmd == "login" {
			c.engine.Login(args[0], args[1])
		} else {
			c.engine.Register(args[0], args[1])
		}
	case "logout":
		if c.requireSession() {
			c.engine.Logout()
		}
	case "feed":
		if c.requireSession() {
			c.engine.FetchFeed()
		}
	case "post":
		c.post(strings.TrimSpace(line[len(fields[0]):]))
	case "vote":
		c.vote(args)
	case "reconnect":
		if phase := c.engine.Snapshot().Phase; phase != transport.PhaseExhausted {
			c.printf(app.MsgNotExhausted, phase)
			return true
		}
		c.engine.Reconnect()
	case "forget":
		c.engine.ForgetSession()
	case "show":
		c.show(c.engine.Snapshot())
	case "quit", "exit":
		return false
	default:
		c.println(app.MsgUnknownCommand)
	}
	return true
}

func (c *Console) requireSession() bool {
	if c.engine.Snapshot().HasSession() {
		return true
	}
	c.println(app.MsgNoSession)
	return false
}

func (c *Console) post(text string) {
	switch {
	case text == "":
		c.println(app.MsgEmptyPost)
	case utf8.RuneCountInString(text) > models.MaxContentLength:
		c.printf(app.MsgPostTooLong, models.MaxContentLength)
	case c.requireSession():
		c.engine.CreatePost(text)
	}
}

func (c *Console) vote(args []string) {
	if len(args) < 2 {
		c.println(app.MsgMissingArguments)
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		c.println(app.MsgInvalidPostID)
		return
	}
	vote, err := models.ParseVote(args[1])
	if err != nil {
		c.println(err.Error())
		return
	}

	snap := c.engine.Snapshot()
	if !snap.HasSession() {
		c.println(app.MsgNoSession)
		return
	}
	if _, ok := snap.Post(int32(id)); !ok {
		c.println(app.MsgUnknownPost)
		return
	}
	c.engine.Vote(int32(id), vote)
}

// onUpdate runs on the engine goroutine.
func (c *Console) onUpdate(u engine.Update) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := u.Snapshot
	if snap.Phase != c.lastPhase {
		c.lastPhase = snap.Phase
		fmt.Fprintf(c.out, "* connection %s\n", snap.Phase)
	}
	if snap.Authenticated != c.authenticated {
		c.authenticated = snap.Authenticated
		if snap.Authenticated {
			fmt.Fprintf(c.out, "* logged in as %s\n", snap.User.Username)
		} else {
			fmt.Fprintln(c.out, "* logged out")
		}
	}
	for _, n := range u.Notices {
		fmt.Fprintf(c.out, "! %s\n", n)
	}
}

func (c *Console) show(snap engine.Snapshot) {
	var b strings.Builder

	fmt.Fprintf(&b, "connection: %s\n", snap.Phase)
	switch {
	case snap.Authenticated:
		u := snap.User
		fmt.Fprintf(&b, "user: %s (id %d, karma %d, streak %d)\n", u.Username, u.ID, u.Karma, u.Streak)
	case snap.HasSession():
		fmt.Fprintln(&b, "user: session stored, not logged in")
	default:
		fmt.Fprintln(&b, "user: logged out")
	}
	if !snap.SessionExpiresAt.IsZero() {
		fmt.Fprintf(&b, "session expires: %s\n", snap.SessionExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	if snap.PendingVotes > 0 {
		fmt.Fprintf(&b, "pending votes: %d\n", snap.PendingVotes)
	}

	fmt.Fprintf(&b, "posts: %d\n", len(snap.Posts))
	for _, p := range snap.Posts {
		fmt.Fprintf(&b, "  #%d [%s] by %d: %s\n", p.ID, p.Vote, p.AuthorID, p.Content)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, b.String())
}

func (c *Console) println(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, msg)
}

func (c *Console) printf(format string, args ...any) {
	c.println(fmt.Sprintf(format, args...))
}
