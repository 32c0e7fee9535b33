// Package session holds the review session state machine: the code being
// edited, the selected language, the in-flight submission and the last result.
//
// The controller is not safe for concurrent use. Callers serialise access the
// way the bubbletea event loop does.
package session

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/richhaase/codescan/internal/domain"
)

// Phase is the observable state of a session.
type Phase int

const (
	// PhaseIdle means no result and nothing in flight.
	PhaseIdle Phase = iota
	// PhaseLoading means a submission is in flight.
	PhaseLoading
	// PhaseLoaded means a result is present.
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot of the session.
type State struct {
	Code          string
	Language      string
	Loading       bool
	Result        *domain.ReviewResult
	ServiceOnline bool
}

// Phase derives the phase from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Result != nil:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

// Settlement describes what happened when a submission finished.
type Settlement int

const (
	// SettlementIgnored means the settlement did not match the in-flight
	// submission (stale, unknown, or after Close) and changed nothing.
	SettlementIgnored Settlement = iota
	// SettlementStored means the result was stored.
	SettlementStored
	// SettlementFailed means the submission failed and the session is idle.
	SettlementFailed
)

// Controller owns the session state.
type Controller struct {
	state   State
	pending string
	closed  bool
	newID   func() string
}

// New creates an idle controller with the given language selected. An
// unknown language falls back to the default.
func New(language string) *Controller {
	c := &Controller{newID: func() string { return ulid.Make().String() }}
	if err := c.SetLanguage(language); err != nil {
		c.state.Language = domain.DefaultLanguage
	}
	return c
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	return c.state
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.state.Phase()
}

// Pending returns the ID of the in-flight submission, or "".
func (c *Controller) Pending() string {
	return c.pending
}

// SetCode replaces the code. It never touches the language or result.
func (c *Controller) SetCode(code string) {
	c.state.Code = code
}

// SetLanguage selects a catalog language. It never touches the code.
func (c *Controller) SetLanguage(id string) error {
	if _, ok := domain.LookupLanguage(id); !ok {
		return fmt.Errorf("unknown language %q (supported: %s)", id, strings.Join(domain.LanguageIDs(), ", "))
	}
	c.state.Language = id
	return nil
}

// SetServiceOnline records the probe outcome. It is independent of the
// submission state machine.
func (c *Controller) SetServiceOnline(online bool) {
	if c.closed {
		return
	}
	c.state.ServiceOnline = online
}

// CanSubmit reports whether Submit would start a request.
func (c *Controller) CanSubmit() bool {
	return !c.closed && !c.state.Loading && strings.TrimSpace(c.state.Code) != ""
}

// Submit starts a submission. It clears any previous result, enters the
// loading phase and returns the request to send. It returns false and
// changes nothing when the code is blank, a submission is in flight, or the
// controller is closed.
func (c *Controller) Submit() (domain.ReviewRequest, bool) {
	if !c.CanSubmit() {
		return domain.ReviewRequest{}, false
	}

	req := domain.ReviewRequest{
		ID:       c.newID(),
		Code:     c.state.Code,
		Language: c.state.Language,
	}
	c.pending = req.ID
	c.state.Loading = true
	c.state.Result = nil
	return req, true
}

// Settle finishes the submission identified by id. On success the result is
// stored; on error the session returns to idle with no result.
func (c *Controller) Settle(id string, result *domain.ReviewResult, err error) Settlement {
	if c.closed || c.pending == "" || id != c.pending {
		return SettlementIgnored
	}

	c.pending = ""
	c.state.Loading = false

	if err != nil || result == nil {
		c.state.Result = nil
		return SettlementFailed
	}
	c.state.Result = result
	return SettlementStored
}

// Close tears the session down. Later settlements and probe results are
// ignored.
func (c *Controller) Close() {
	c.closed = true
	c.pending = ""
	c.state.Loading = false
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool {
	return c.closed
}
