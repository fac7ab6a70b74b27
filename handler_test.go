// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"errors"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"testing"

	"code.hybscloud.com/flux"
	"code.hybscloud.com/kont"
)

func TestRunEffSuccess(t *testing.T) {
	th, _ := newThread(t)
	result := flux.RunEff(th, kont.Pure(42))
	if !result.IsRight() {
		t.Fatal("expected Right, got Left")
	}
	v, _ := result.GetRight()
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
	if th.Depth() != 0 {
		t.Fatalf("%d scopes left on the stack", th.Depth())
	}
}

func TestRunEffRaise(t *testing.T) {
	th, _ := newThread(t)
	var order []string
	protocol := flux.GuardThen(func(arg any) { order = append(order, arg.(string)) }, "guard",
		flux.DeferThen(func() { order = append(order, "defer") },
			flux.RaiseFail[int](flux.CodeInvalid, "bad input"),
		),
	)
	result := flux.RunEff(th, protocol)
	if !result.IsLeft() {
		t.Fatal("expected Left, got Right")
	}
	e, _ := result.GetLeft()
	if e.Code() != flux.CodeInvalid || e.Message() != "bad input" {
		t.Fatalf("got %v", e)
	}
	if e.File() != "handler_test.go" {
		t.Fatalf("file: got %q", e.File())
	}
	if want := []string{"defer", "guard"}; !slices.Equal(order, want) {
		t.Fatalf("order: got %v, want %v", order, want)
	}
}

func TestRunEffDeferOnSuccess(t *testing.T) {
	th, _ := newThread(t)
	var order []string
	protocol := flux.GuardThen(func(any) { order = append(order, "guard") }, nil,
		flux.DeferThen(func() { order = append(order, "defer") }, kont.Pure("done")),
	)
	result := flux.RunEff(th, protocol)
	v, ok := result.GetRight()
	if !ok || v != "done" {
		t.Fatalf("got %v", result)
	}
	if want := []string{"defer"}; !slices.Equal(order, want) {
		t.Fatalf("order: got %v, want %v", order, want)
	}
}

func TestRunEffThrowError(t *testing.T) {
	th, _ := newThread(t)
	released := false
	_, cause := strconv.Atoi("x")
	protocol := flux.GuardThen(func(any) { released = true }, nil,
		kont.ThrowError[error, int](cause),
	)
	result := flux.RunEff(th, protocol)
	e, ok := result.GetLeft()
	if !ok {
		t.Fatal("expected Left, got Right")
	}
	if e.Code() != flux.CodeParse {
		t.Fatalf("code: got %v, want CodeParse", e.Code())
	}
	if !errors.Is(e, strconv.ErrSyntax) {
		t.Fatal("failure does not unwrap to the thrown error")
	}
	if e.File() != "handler_test.go" {
		t.Fatalf("file: got %q", e.File())
	}
	if !released {
		t.Fatal("guard did not run")
	}
}

func TestRunEffThrowFluxError(t *testing.T) {
	th, _ := newThread(t)
	thrown := flux.NewError(flux.Code(70), "quota", "/x/quota.go", 11)
	result := flux.RunEff(th, kont.ThrowError[error, int](&thrown))
	e, ok := result.GetLeft()
	if !ok {
		t.Fatal("expected Left, got Right")
	}
	if e.Code() != flux.Code(70) || e.File() != "quota.go" || e.Line() != 11 {
		t.Fatalf("got %v", e)
	}
}

func TestRunEffCatchError(t *testing.T) {
	th, _ := newThread(t)
	protocol := kont.CatchError(
		kont.ThrowError[error, string](errors.New("fail")),
		func(err error) kont.Eff[string] {
			return kont.Pure("recovered: " + err.Error())
		},
	)
	result := flux.RunEff(th, protocol)
	v, ok := result.GetRight()
	if !ok || v != "recovered: fail" {
		t.Fatalf("got %v", result)
	}
}

func TestCheckThen(t *testing.T) {
	th, _ := newThread(t)
	ok := flux.RunEff(th, flux.CheckThen(flux.CodeIO, nil, "read", kont.Pure(1)))
	if !ok.IsRight() {
		t.Fatal("nil error failed")
	}
	failed := flux.RunEff(th, flux.CheckThen(flux.CodeIO, errors.New("EOF"), "read header", kont.Pure(1)))
	e, isLeft := failed.GetLeft()
	if !isLeft {
		t.Fatal("expected Left, got Right")
	}
	if e.Message() != "read header: EOF" {
		t.Fatalf("message: got %q", e.Message())
	}
}

func TestRunEffNestedInScope(t *testing.T) {
	th, _ := newThread(t)
	outerReleased := false
	err := th.Try(func(s *flux.Scope) {
		s.OnFailure(func(any) { outerReleased = true }, nil)
		result := flux.RunEff(th, flux.RaiseFail[int](flux.CodeIO, "inner"))
		if !result.IsLeft() {
			t.Error("expected Left")
		}
		if s.State() != flux.Active {
			t.Errorf("outer state: got %v", s.State())
		}
	})
	if err != nil {
		t.Fatalf("outer failed: %v", err)
	}
	if outerReleased {
		t.Fatal("outer guard ran for an inner failure")
	}
}

func TestRunEffUnhandledEffect(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }

	th, _ := newThread(t)
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "unhandled effect") {
			t.Fatalf("unexpected panic: %v", r)
		}
		if th.Depth() != 0 {
			t.Fatalf("%d scopes left on the stack", th.Depth())
		}
	}()
	flux.RunEff(th, kont.Perform(bogus{}))
}

func TestRunEffDepthLimitReportsCaller(t *testing.T) {
	th, _ := newThread(t)
	var line int
	status, diag := catchAbort(t, func() {
		nest(th, flux.MaxDepth, func() {
			_, _, line, _ = runtime.Caller(0)
			flux.RunEff(th, kont.Pure(1))
		})
	})
	if status != 2 {
		t.Fatalf("exit status: got %d, want 2", status)
	}
	if diag == nil || diag.Code() != flux.CodeLimit {
		t.Fatalf("diagnostic: got %v", diag)
	}
	if diag.File() != "handler_test.go" || diag.Line() != line+1 {
		t.Fatalf("site: got %s:%d, want handler_test.go:%d", diag.File(), diag.Line(), line+1)
	}

	status, diag = catchAbort(t, func() {
		nest(th, flux.MaxDepth, func() {
			_, _, line, _ = runtime.Caller(0)
			flux.RunExpr(th, kont.ExprReturn(1))
		})
	})
	if status != 2 || diag == nil {
		t.Fatalf("RunExpr: status %d diagnostic %v", status, diag)
	}
	if diag.File() != "handler_test.go" || diag.Line() != line+1 {
		t.Fatalf("RunExpr site: got %s:%d, want handler_test.go:%d", diag.File(), diag.Line(), line+1)
	}
}

func TestRunExprSuccess(t *testing.T) {
	th, _ := newThread(t)
	var order []string
	protocol := flux.ExprGuardThen(func(any) { order = append(order, "guard") }, nil,
		flux.ExprDeferThen(func() { order = append(order, "defer") }, kont.ExprReturn(5)),
	)
	result := flux.RunExpr(th, protocol)
	v, ok := result.GetRight()
	if !ok || v != 5 {
		t.Fatalf("got %v", result)
	}
	if want := []string{"defer"}; !slices.Equal(order, want) {
		t.Fatalf("order: got %v, want %v", order, want)
	}
}

func TestRunExprRaise(t *testing.T) {
	th, _ := newThread(t)
	var rec recorder
	protocol := flux.ExprGuardThen(rec.action, 1,
		flux.ExprGuardThen(rec.action, 2,
			flux.ExprRaiseFail[int](flux.CodeAlloc, "out of memory"),
		),
	)
	result := flux.RunExpr(th, protocol)
	e, ok := result.GetLeft()
	if !ok {
		t.Fatal("expected Left, got Right")
	}
	if e.Code() != flux.CodeAlloc || e.Message() != "out of memory" {
		t.Fatalf("got %v", e)
	}
	if want := []int{2, 1}; !slices.Equal(rec.got, want) {
		t.Fatalf("guards: got %v, want %v", rec.got, want)
	}
}

func TestRunExprThrowError(t *testing.T) {
	th, _ := newThread(t)
	result := flux.RunExpr(th, kont.ExprThrowError[error, int](flux.CodeInvalid))
	e, ok := result.GetLeft()
	if !ok {
		t.Fatal("expected Left, got Right")
	}
	if e.Code() != flux.CodeInvalid {
		t.Fatalf("code: got %v", e.Code())
	}
}

func TestProtect(t *testing.T) {
	th, _ := newThread(t)
	right := flux.Protect(th, func(s *flux.Scope) string { return "ok" })
	if v, ok := right.GetRight(); !ok || v != "ok" {
		t.Fatalf("got %v", right)
	}
	left := flux.Protect(th, func(s *flux.Scope) string {
		s.Fail(flux.CodeIO, "nope")
		return "unreachable"
	})
	if e, ok := left.GetLeft(); !ok || e.Message() != "nope" {
		t.Fatalf("got %v", left)
	}
}
