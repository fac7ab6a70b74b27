// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// scopeHandler handles scope effects and the kont error effect inside a
// protected scope. A thrown error becomes a flux failure, so the scope's
// guards run before the result is returned.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type scopeHandler[A any] struct {
	scope  *Scope
	errCtx *kont.ErrorContext[error]
	file   string
	line   int
}

// Dispatch implements kont.Handler for the composed Scope+Error handler.
// Dispatch order: Scope → Error.
func (h scopeHandler[A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if sop, ok := op.(scopeDispatcher); ok {
		return sop.DispatchScope(h.scope), true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			h.throw(h.errCtx.Err)
		}
		return v, true
	}
	panic("flux: unhandled effect in scopeHandler")
}

// throw converts an error thrown through the kont error effect into a
// failure of the nearest scope, attributed to the RunEff or RunExpr call.
func (h scopeHandler[A]) throw(err error) {
	if fe, ok := asError(err); ok {
		h.scope.thread.raise(*fe)
	}
	e := NewError(Classify(err), errorMessage(err), h.file, h.line)
	h.scope.thread.raise(e.withCause(err))
}

func errorMessage(err error) string {
	if err == nil {
		return "nil error thrown"
	}
	return err.Error()
}

// RunEff runs a Cont-world program inside a protected scope on t.
// The program may perform [Raise], [Guard], [Defer] and the kont error
// effect with E = error ([kont.ThrowError] / [kont.CatchError]).
// Returns Right on completion, Left when the scope unwound.
func RunEff[A any](t *Thread, protocol kont.Eff[A]) kont.Either[*Error, A] {
	file, line := location(1)
	return protect(t, func(s *Scope) A {
		var errCtx kont.ErrorContext[error]
		h := scopeHandler[A]{scope: s, errCtx: &errCtx, file: file, line: line}
		return kont.Handle(protocol, h)
	}, 2)
}

// RunExpr runs an Expr-world program inside a protected scope on t.
// See [RunEff].
func RunExpr[A any](t *Thread, protocol kont.Expr[A]) kont.Either[*Error, A] {
	file, line := location(1)
	return protect(t, func(s *Scope) A {
		var errCtx kont.ErrorContext[error]
		h := scopeHandler[A]{scope: s, errCtx: &errCtx, file: file, line: line}
		return kont.HandleExpr(protocol, h)
	}, 2)
}
