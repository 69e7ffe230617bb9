// Package capture implements the interactive rebinding session: a small
// state machine that listens for one key event, previews conflicts, and
// commits or abandons the result.
package capture

import (
	"errors"

	"github.com/dshills/keybind/internal/binding"
	"github.com/dshills/keybind/internal/conflict"
	"github.com/dshills/keybind/internal/key"
)

// Session state machine errors.
var (
	// ErrCaptureActive indicates Begin was called while a session is
	// already capturing or holding a captured combo.
	ErrCaptureActive = errors.New("capture: session already active")

	// ErrNotCaptured indicates Save was called with no captured combo.
	ErrNotCaptured = errors.New("capture: no combo captured")

	// ErrNotActive indicates an operation that needs an active session.
	ErrNotActive = errors.New("capture: no active session")
)

// State is the session phase.
type State uint8

const (
	// StateIdle means no capture is in progress.
	StateIdle State = iota

	// StateCapturing means the session is waiting for a qualifying key
	// event for the target shortcut.
	StateCapturing

	// StateCaptured means a combo has been captured and awaits Save,
	// re-capture, or Cancel.
	StateCaptured
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// SaveResult reports the outcome of a Save attempt.
type SaveResult struct {
	// Saved is true when the combo was committed to the override layer.
	Saved bool

	// Conflict is the blocking conflict when Saved is false, or the
	// warning that accompanied a successful save. Nil when clean.
	Conflict *conflict.Conflict
}

// Session drives one rebinding interaction. A session targets a single
// shortcut at a time; it is not safe for concurrent use.
type Session struct {
	store    *binding.Store
	detector *conflict.Detector

	state    State
	targetID string
	combo    string
	conflict *conflict.Conflict
}

// NewSession creates an idle session over a binding store and detector.
func NewSession(store *binding.Store, detector *conflict.Detector) *Session {
	return &Session{store: store, detector: detector}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// TargetID returns the shortcut being rebound, or "" when idle.
func (s *Session) TargetID() string { return s.targetID }

// Combo returns the captured canonical combo, or "" before capture.
func (s *Session) Combo() string { return s.combo }

// Conflict returns the conflict detected for the captured combo, nil when
// none or before capture.
func (s *Session) Conflict() *conflict.Conflict { return s.conflict }

// Begin starts capturing for the target shortcut. Fails when the target is
// unknown or another capture is in flight.
func (s *Session) Begin(targetID string) error {
	if s.state != StateIdle {
		return ErrCaptureActive
	}
	if _, err := s.store.Effective(targetID); err != nil {
		return err
	}
	s.state = StateCapturing
	s.targetID = targetID
	s.combo = ""
	s.conflict = nil
	return nil
}

// Handle feeds one key event into the session. While capturing:
//
//   - Escape aborts back to idle, leaving the binding untouched.
//   - Tab and bare modifier presses are ignored; capture continues.
//   - Any other key becomes the captured combo; conflicts are computed
//     immediately so the UI can preview them before Save.
//
// In the captured state a further event re-captures, replacing the pending
// combo. Events in the idle state are ignored.
func (s *Session) Handle(ev key.Event) error {
	if s.state == StateIdle {
		return nil
	}
	if ev.IsEscape() {
		s.reset()
		return nil
	}
	combo, ok := key.FromEvent(ev)
	if !ok {
		// Bare modifier or Tab; keep waiting.
		return nil
	}
	c, err := s.detector.Detect(s.targetID, combo)
	if err != nil {
		return err
	}
	s.state = StateCaptured
	s.combo = combo
	s.conflict = c
	return nil
}

// Save commits the captured combo. A conflict of error severity blocks the
// save and the session stays in the captured state so the user can try
// another combo or cancel; warnings do not block. On success the session
// returns to idle.
func (s *Session) Save() (SaveResult, error) {
	if s.state != StateCaptured {
		return SaveResult{}, ErrNotCaptured
	}
	if s.conflict != nil && s.conflict.Severity == conflict.SeverityError {
		return SaveResult{Saved: false, Conflict: s.conflict}, nil
	}
	if err := s.store.SetCustom(s.targetID, s.combo); err != nil {
		return SaveResult{}, err
	}
	res := SaveResult{Saved: true, Conflict: s.conflict}
	s.reset()
	return res, nil
}

// Cancel abandons the session without touching the binding.
func (s *Session) Cancel() {
	s.reset()
}

// Clear disables the target shortcut and ends the session. Valid in any
// active state.
func (s *Session) Clear() error {
	if s.state == StateIdle {
		return ErrNotActive
	}
	if err := s.store.Disable(s.targetID); err != nil {
		return err
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.state = StateIdle
	s.targetID = ""
	s.combo = ""
	s.conflict = nil
}
