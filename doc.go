// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flux provides protected scopes with failure-driven unwinding and
// deterministic cleanup for goroutine-owned execution contexts.
//
// Call sites stay linear: a fallible step signals a failure instead of
// returning an error to be checked, and every cleanup registered in the
// scope since it was entered runs, most recent first, before the handler
// sees the failure.
//
// # Architecture
//
//   - Thread: the per-goroutine context. [New] creates one explicitly; [Do] and [Go] lazily acquire one from a registry and tear it down when the function returns.
//   - Scope stack: fixed depth ([MaxDepth]). [Thread.Try] pushes a scope, runs its body, and pops it.
//   - Guard pool: fixed capacity ([MaxGuards]) bump allocator. Each scope rewinds it to its entry mark when it pops, so registration never allocates.
//   - Error: [Error] carries a [Code], a bounded message, and the basename and line of the signal site.
//
// # Control Protocol
//
//   - Enter: [Thread.Try], [Scope.Try], [Protect].
//   - Signal: [Thread.Fail], [Thread.Failf], [Thread.Check], [Thread.Must] and the [Scope] equivalents. A failure transfers control to the nearest scope, abandoning the frames in between.
//   - Register: [Thread.OnFailure] runs only on the failure path; [Thread.Defer] runs on both paths.
//   - Inspect: the *Error returned by Try, [Thread.Err], [Error.Render].
//
// Misuse is fatal: signaling with no active scope, registering a cleanup
// outside an active scope, or nesting deeper than [MaxDepth] reports a
// diagnostic on the Thread's [Sink] and exits the process.
//
// # Effects
//
// [RunEff] and [RunExpr] evaluate [code.hybscloud.com/kont] programs inside
// a protected scope. Programs perform [Raise], [Guard] and [Defer], or throw
// through the kont error effect with E = error; results come back as
// [code.hybscloud.com/kont.Either].
//
// # Example
//
//	t := flux.New()
//	err := t.Try(func(s *flux.Scope) {
//		f := flux.Open(s, "input.txt")
//		s.OnFailure(func(any) { os.Remove("output.txt") }, nil)
//		if _, err := f.Read(buf); err != nil {
//			s.Fail(flux.CodeParse, "short input")
//		}
//	})
//	err.Render(os.Stderr) // no-op on success
package flux
