// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// scopeDispatcher is the structural interface for scope operations.
// DispatchScope runs on the goroutine that owns the scope.
type scopeDispatcher interface {
	DispatchScope(s *Scope) kont.Resumed
}

// Raise is the effect operation for signaling a failure.
// Perform(Raise{...}) unwinds the nearest scope and never resumes.
type Raise struct {
	kont.Phantom[struct{}]
	Code    Code
	Message string
	File    string
	Line    int
}

// DispatchScope handles Raise by transferring control to the nearest scope.
func (r Raise) DispatchScope(s *Scope) kont.Resumed {
	s.thread.raise(NewError(r.Code, r.Message, r.File, r.Line))
	return struct{}{}
}

// Guard is the effect operation for registering a failure-only cleanup.
// Perform(Guard{Action: f, Arg: x}) arranges f(x) to run if the scope fails.
type Guard struct {
	kont.Phantom[struct{}]
	Action func(any)
	Arg    any
}

// DispatchScope handles Guard by registering it on the nearest scope.
func (g Guard) DispatchScope(s *Scope) kont.Resumed {
	s.thread.register(g.Action, g.Arg, false, 2)
	return struct{}{}
}

// Defer is the effect operation for registering a cleanup that runs when
// the scope exits on either path.
type Defer struct {
	kont.Phantom[struct{}]
	Action func()
}

// DispatchScope handles Defer by registering it on the nearest scope.
func (d Defer) DispatchScope(s *Scope) kont.Resumed {
	s.thread.register(thunk(d.Action), d.Action, true, 2)
	return struct{}{}
}
