// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"os"
	"runtime"

	"go.uber.org/zap"
)

// abortStatus is the process exit status after fatal misuse.
const abortStatus = 2

// exit terminates the process after fatal misuse.
var exit = os.Exit

// Thread is the per-goroutine execution context: a fixed-depth stack of
// protected scopes and the guard pool backing their cleanup registrations.
//
// A Thread must only be used by the goroutine that owns it. Threads share
// nothing; failures and guards never cross from one Thread to another.
type Thread struct {
	stack  [MaxDepth]Scope
	top    int
	pool   guardPool
	serial Serial
	last   *Error
	sink   Sink
	log    *zap.Logger
}

// unwind is the panic value that transfers a failure to the scope at
// level on thread.
type unwind struct {
	thread *Thread
	level  int
}

// New creates a Thread with an empty scope stack.
// The caller's goroutine owns it until [Thread.Close].
func New(opts ...Option) *Thread {
	t := &Thread{top: -1}
	t.configure(opts)
	return t
}

func (t *Thread) configure(opts []Option) {
	t.serial = nextSerial()
	t.sink = stderrSink
	t.log = zap.NewNop()
	for _, opt := range opts {
		opt(t)
	}
}

// Serial returns the identifier assigned to t.
func (t *Thread) Serial() Serial { return t.serial }

// Depth returns the number of scopes currently on the stack.
func (t *Thread) Depth() int { return t.top + 1 }

// Err returns the error of the most recently unwound scope, or nil.
func (t *Thread) Err() *Error { return t.last }

// Try runs body inside a new protected scope.
//
// If body returns normally, guards registered with [Thread.OnFailure] are
// discarded without running, guards registered with [Thread.Defer] run in
// reverse order, and Try returns nil. If a failure is signaled while this
// scope is the nearest one, the frames between the signal site and Try are
// abandoned, every guard of the scope runs in reverse registration order,
// and Try returns the failure.
//
// Entering more than [MaxDepth] nested scopes aborts the process.
//
// The result is a nil *Error on success. Compare it against nil before
// storing it in an error variable, which would otherwise hold a non-nil
// interface wrapping the nil pointer.
func (t *Thread) Try(body func(s *Scope)) *Error {
	return t.try(body, 2)
}

// Fail signals a failure to the nearest scope. It does not return.
// With no active scope the failure is reported and the process aborts.
func (t *Thread) Fail(code Code, message string) {
	t.fail(code, message, nil, 2)
}

// Failf is like Fail with a formatted message.
func (t *Thread) Failf(code Code, format string, args ...any) {
	t.fail(code, sprintf(format, args...), nil, 2)
}

// Check fails with code and the message "message: err" when err is
// non-nil. The resulting [Error] unwraps to err.
func (t *Thread) Check(code Code, err error, message string) {
	if err != nil {
		t.fail(code, join(message, err), err, 2)
	}
}

// Must fails with the code [Classify] assigns to err when err is non-nil.
func (t *Thread) Must(err error) {
	if err != nil {
		t.fail(Classify(err), err.Error(), err, 2)
	}
}

// OnFailure registers action(arg) on the nearest scope. It runs only if
// that scope unwinds because of a failure.
//
// Registering without an active scope aborts the process. Registering
// more than [MaxGuards] guards fails with [CodeLimit].
func (t *Thread) OnFailure(action func(any), arg any) {
	t.register(action, arg, false, 2)
}

// Defer registers fn on the nearest scope. It runs when that scope exits,
// whether normally or because of a failure.
func (t *Thread) Defer(fn func()) {
	t.register(thunk(fn), fn, true, 2)
}

// Close tears t down. Pending guards are not run; closing with active
// scopes is logged as misuse. A Thread acquired by [Do] or [Go] stays
// owned by its caller until Do returns, which hands it back to the
// registry; closing it early only resets it.
func (t *Thread) Close() {
	if t.top >= 0 {
		t.log.Warn("flux: thread torn down with active scopes",
			zap.Uint32("thread", t.serial),
			zap.Int("depth", t.top+1),
		)
	}
	for i := 0; i <= t.top; i++ {
		t.stack[i] = Scope{}
	}
	t.top = -1
	t.pool.release(0)
	t.last = nil
}

func (t *Thread) try(body func(s *Scope), skip int) *Error {
	s := t.enter(skip + 1)
	if t.run(s, body) {
		t.release(s, false)
		return nil
	}
	return t.unwind(s)
}

// enter pushes a new scope record.
func (t *Thread) enter(skip int) *Scope {
	if t.top+1 >= MaxDepth {
		file, line := location(skip)
		t.abort(NewError(CodeLimit, "maximum nesting depth exceeded", file, line))
	}
	t.top++
	s := &t.stack[t.top]
	s.reset(t, t.top, t.pool.mark())
	return s
}

// run executes body as the Active phase of s and reports whether it
// completed normally. A failure aimed at s is absorbed; any other panic
// releases s and continues.
func (t *Thread) run(s *Scope, body func(s *Scope)) (ok bool) {
	defer func() {
		if ok {
			return
		}
		r := recover()
		if u, match := r.(unwind); match && u.thread == t && u.level == s.level {
			return
		}
		t.release(s, true)
		if r != nil {
			panic(r)
		}
	}()
	s.state = Active
	body(s)
	return true
}

// unwind handles a failure caught by s.
func (t *Thread) unwind(s *Scope) *Error {
	e := s.err
	t.last = &e
	t.log.Debug("flux: scope unwound",
		zap.Uint32("thread", t.serial),
		zap.Int("level", s.level),
		zap.Int32("code", int32(e.code)),
		zap.String("message", e.message),
	)
	t.release(s, true)
	return &e
}

// release runs the guards of s that apply and pops s.
func (t *Thread) release(s *Scope, failed bool) {
	head := s.guards
	s.guards = nil
	if failed {
		s.state = Unwinding
	} else {
		s.state = Popped
	}
	defer t.pop(s)
	invoke(head, failed)
}

// pop removes s, and anything left above it, from the stack and rewinds
// the guard pool to the mark taken when s was entered.
func (t *Thread) pop(s *Scope) {
	for i := t.top; i >= s.level; i-- {
		t.stack[i].state = Popped
		t.stack[i].guards = nil
	}
	t.top = s.level - 1
	t.pool.release(s.base)
}

// nearest returns the innermost Active scope, or nil.
func (t *Thread) nearest() *Scope {
	for i := t.top; i >= 0; i-- {
		if s := &t.stack[i]; s.state == Active {
			return s
		}
	}
	return nil
}

func (t *Thread) fail(code Code, message string, cause error, skip int) {
	file, line := location(skip)
	t.raise(NewError(code, message, file, line).withCause(cause))
}

// raise stores e in the nearest scope and transfers control to it.
func (t *Thread) raise(e Error) {
	s := t.nearest()
	if s == nil {
		t.abort(e)
	}
	s.err = e
	s.failed = true
	panic(unwind{thread: t, level: s.level})
}

func (t *Thread) register(action func(any), arg any, always bool, skip int) {
	if t.top < 0 || t.stack[t.top].state != Active {
		file, line := location(skip)
		t.abort(NewError(CodeInvalid, "cleanup registered outside an active scope", file, line))
	}
	s := &t.stack[t.top]
	g := t.pool.claim()
	if g == nil {
		t.fail(CodeLimit, "resource limit exceeded", nil, skip+1)
	}
	g.action = action
	g.arg = arg
	g.always = always
	g.next = s.guards
	s.guards = g
}

// abort reports fatal misuse and terminates the process.
func (t *Thread) abort(e Error) {
	t.log.Error("flux: fatal",
		zap.Uint32("thread", t.serial),
		zap.Int("depth", t.top+1),
		zap.Int32("code", int32(e.code)),
		zap.String("message", e.message),
		zap.String("file", e.file),
		zap.Int("line", e.line),
	)
	t.sink.Report(&e)
	exit(abortStatus)
	panic(&e) // exit only returns when replaced in tests
}

// location returns the source position skip frames above its caller.
func location(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	return file, line
}
