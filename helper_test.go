// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/flux"
)

// newThread returns a Thread whose diagnostics are captured in the
// returned buffer.
func newThread(tb testing.TB, opts ...flux.Option) (*flux.Thread, *bytes.Buffer) {
	tb.Helper()
	var buf bytes.Buffer
	th := flux.New(append([]flux.Option{flux.WithSink(flux.NewWriterSink(&buf))}, opts...)...)
	tb.Cleanup(th.Close)
	return th, &buf
}

// catchAbort runs fn with process exit replaced and returns the exit
// status it requested (-1 if none) and the diagnostic it aborted with.
func catchAbort(tb testing.TB, fn func()) (status int, diag *flux.Error) {
	tb.Helper()
	status = -1
	restore := flux.SetExit(func(code int) { status = code })
	defer restore()
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			e, ok := r.(*flux.Error)
			if !ok {
				panic(r)
			}
			diag = e
		}()
		fn()
	}()
	return status, diag
}

// recorder collects the order in which cleanup actions run.
type recorder struct {
	got []int
}

func (r *recorder) action(arg any) {
	r.got = append(r.got, arg.(int))
}
