// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import "code.hybscloud.com/atomix"

// guard is one registered cleanup action. Guards of a scope form a
// singly linked list, most recently registered first.
type guard struct {
	action func(any)
	arg    any
	always bool // also runs on normal scope exit
	next   *guard
}

// guardPool is a Thread's fixed-capacity bump allocator for guards.
//
// Each scope records the cursor when it is entered and rewinds the pool to
// that mark when it pops, so slots claimed by an enclosing scope are never
// handed out again while that scope is live. The cursor is atomic only to
// keep reentrant misuse on the owning goroutine from tearing a slot; a pool
// is never shared between goroutines.
type guardPool struct {
	slots  [MaxGuards]guard
	cursor atomix.Uint32
}

// claim reserves the next free slot.
// Returns nil when the pool is exhausted; the cursor is left unchanged.
func (p *guardPool) claim() *guard {
	n := p.cursor.Add(1)
	if n > MaxGuards {
		p.cursor.Add(^uint32(0))
		return nil
	}
	return &p.slots[n-1]
}

// mark returns the current cursor, to be passed to release later.
func (p *guardPool) mark() uint32 {
	return p.cursor.Load()
}

// release rewinds the cursor to base and clears the slots above it so
// their arguments can be collected.
func (p *guardPool) release(base uint32) {
	top := min(p.cursor.Load(), MaxGuards)
	if base < top {
		clear(p.slots[base:top])
	}
	p.cursor.Store(base)
}

// claimed returns the number of claimed slots.
func (p *guardPool) claimed() int {
	return int(p.cursor.Load())
}

// invoke runs the guards of list g, head to tail. Each call is scheduled
// like a deferred function: a guard that panics or fails does not prevent
// the rest of the list from running. Guards without always set run only
// when failed is true.
func invoke(g *guard, failed bool) {
	if g == nil {
		return
	}
	defer invoke(g.next, failed)
	if g.action != nil && (failed || g.always) {
		g.action(g.arg)
	}
}

// callThunk adapts a func() to the guard action signature.
func callThunk(fn any) { fn.(func())() }

// thunk returns the guard action for fn; nil when fn is nil.
func thunk(fn func()) func(any) {
	if fn == nil {
		return nil
	}
	return callThunk
}
