// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import "code.hybscloud.com/kont"

// Protect runs body inside a protected scope on t and returns its result
// as Right, or the failure as Left.
func Protect[A any](t *Thread, body func(s *Scope) A) kont.Either[*Error, A] {
	return protect(t, body, 2)
}

// protect is Protect with skip counting the frames above it, so callers
// wrapping it attribute a depth-limit abort to their own caller.
func protect[A any](t *Thread, body func(s *Scope) A, skip int) kont.Either[*Error, A] {
	var a A
	if err := t.try(func(s *Scope) { a = body(s) }, skip+1); err != nil {
		return kont.Left[*Error, A](err)
	}
	return kont.Right[*Error, A](a)
}
