package transport

// Phase is the lifecycle state of the connection.
type Phase int32

const (
	// PhaseConnecting is the initial dial, or a dial requested by Reconnect.
	PhaseConnecting Phase = iota
	// PhaseOpen means frames can be sent.
	PhaseOpen
	// PhaseReconnecting follows a lost connection or a failed dial.
	PhaseReconnecting
	// PhaseExhausted is entered after MaxAttempts failed reconnects. Only an
	// explicit Reconnect leaves it.
	PhaseExhausted
	// PhaseClosed is terminal.
	PhaseClosed
)

var phaseNames = [...]string{
	PhaseConnecting:   "connecting",
	PhaseOpen:         "open",
	PhaseReconnecting: "reconnecting",
	PhaseExhausted:    "exhausted",
	PhaseClosed:       "closed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

func allPhaseNames() []string {
	return phaseNames[:]
}
