// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

//go:generate go tool stringer -type=State

// State is the lifecycle state of a protected scope record.
type State int

// Scope states. A record moves Pushed → Active → Popped on normal exit
// and passes through Unwinding only when a failure releases it.
const (
	Popped    State = iota // not on the stack, or running Defer guards after a normal exit
	Pushed                 // entered, body not yet running
	Active                 // body running, guards may be registered
	Unwinding              // failure guards are being invoked
)

// Scope is the record of one protected scope on a Thread's stack.
//
// A *Scope is handed to the body of [Thread.Try] and is valid only while
// that body runs. Its methods act on the Thread's nearest scope, which is
// the receiver unless a nested scope has been entered since.
type Scope struct {
	thread *Thread
	level  int
	state  State
	base   uint32
	guards *guard
	err    Error
	failed bool
}

// Level returns the nesting level of s, starting at 0.
func (s *Scope) Level() int { return s.level }

// State returns the current lifecycle state of s.
func (s *Scope) State() State { return s.state }

// Thread returns the Thread that owns s.
func (s *Scope) Thread() *Thread { return s.thread }

// Err returns the failure that s is unwinding from, or nil.
func (s *Scope) Err() *Error {
	if !s.failed {
		return nil
	}
	e := s.err
	return &e
}

// Try runs body in a scope nested inside s. See [Thread.Try].
func (s *Scope) Try(body func(s *Scope)) *Error {
	return s.thread.try(body, 2)
}

// Fail signals a failure to the nearest scope. It does not return.
func (s *Scope) Fail(code Code, message string) {
	s.thread.fail(code, message, nil, 2)
}

// Failf is like Fail with a formatted message.
func (s *Scope) Failf(code Code, format string, args ...any) {
	s.thread.fail(code, sprintf(format, args...), nil, 2)
}

// Check fails with code when err is non-nil. See [Thread.Check].
func (s *Scope) Check(code Code, err error, message string) {
	if err != nil {
		s.thread.fail(code, join(message, err), err, 2)
	}
}

// Must fails with a code classified from err when err is non-nil.
// See [Thread.Must].
func (s *Scope) Must(err error) {
	if err != nil {
		s.thread.fail(Classify(err), err.Error(), err, 2)
	}
}

// OnFailure registers action(arg) to run if the nearest scope unwinds
// because of a failure.
func (s *Scope) OnFailure(action func(any), arg any) {
	s.thread.register(action, arg, false, 2)
}

// Defer registers fn to run when the nearest scope exits, on both the
// failure and the normal path.
func (s *Scope) Defer(fn func()) {
	s.thread.register(thunk(fn), fn, true, 2)
}

// reset prepares s as a freshly pushed record.
func (s *Scope) reset(t *Thread, level int, base uint32) {
	s.thread = t
	s.level = level
	s.base = base
	s.guards = nil
	s.err = Error{}
	s.failed = false
	s.state = Pushed
}
