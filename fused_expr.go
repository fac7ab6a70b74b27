// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is pre-allocated to avoid boxing ReturnFrame into
// kont.Frame on every fused constructor.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprRaiseFail signals a failure attributed to the caller and never completes.
// Fuses ExprPerform(Raise{...}).
func ExprRaiseFail[A any](code Code, message string) kont.Expr[A] {
	file, line := location(1)
	ef := kont.AcquireEffectFrame()
	ef.Operation = Raise{Code: code, Message: message, File: file, Line: line}
	ef.Resume = identityResume
	ef.Next = exprReturnFrame
	return kont.ExprSuspend[A](ef)
}

// ExprGuardThen registers action(arg) as a failure-only cleanup and then
// continues with next.
// Fuses ExprPerform(Guard{...}) + ExprThen.
func ExprGuardThen[B any](action func(any), arg any, next kont.Expr[B]) kont.Expr[B] {
	return exprThen[B](Guard{Action: action, Arg: arg}, next)
}

// ExprDeferThen registers fn as a scope-exit cleanup and then continues
// with next.
// Fuses ExprPerform(Defer{...}) + ExprThen.
func ExprDeferThen[B any](fn func(), next kont.Expr[B]) kont.Expr[B] {
	return exprThen[B](Defer{Action: fn}, next)
}

// exprThen performs op and then continues with next.
func exprThen[B any](op kont.Operation, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}
