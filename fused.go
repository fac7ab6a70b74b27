// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// RaiseFail signals a failure attributed to the caller and never completes.
// Fuses Perform(Raise{...}) + Then.
func RaiseFail[A any](code Code, message string) kont.Eff[A] {
	file, line := location(1)
	var zero A
	return kont.Then(kont.Perform(Raise{Code: code, Message: message, File: file, Line: line}), kont.Pure(zero))
}

// GuardThen registers action(arg) as a failure-only cleanup and then
// continues with next.
// Fuses Perform(Guard{...}) + Then.
func GuardThen[B any](action func(any), arg any, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Guard{Action: action, Arg: arg}), next)
}

// DeferThen registers fn as a scope-exit cleanup and then continues with next.
// Fuses Perform(Defer{...}) + Then.
func DeferThen[B any](fn func(), next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Defer{Action: fn}), next)
}

// CheckThen continues with next when err is nil, and otherwise signals
// a failure with code and the message "message: err".
func CheckThen[B any](code Code, err error, message string, next kont.Eff[B]) kont.Eff[B] {
	if err == nil {
		return next
	}
	file, line := location(1)
	return kont.Then(kont.Perform(Raise{Code: code, Message: join(message, err), File: file, Line: line}), next)
}
