// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Error is the failure carried from a signal site to the handler of the
// nearest protected scope. It is immutable once constructed and is passed
// by value; the message and source basename are bounded by [MaxMessage]
// and [MaxFile].
type Error struct {
	code    Code
	message string
	file    string
	line    int
	cause   error
}

// NewError constructs an Error. Oversized input is truncated, never
// rejected, and any directory prefix of file is stripped.
func NewError(code Code, message, file string, line int) Error {
	return Error{
		code:    code,
		message: truncate(message, MaxMessage),
		file:    truncate(basename(file), MaxFile),
		line:    line,
	}
}

// Code returns the failure code.
func (e *Error) Code() Code { return e.code }

// Message returns the (possibly truncated) failure message.
func (e *Error) Message() string { return e.message }

// File returns the basename of the source file that signaled the failure.
func (e *Error) File() string { return e.file }

// Line returns the source line that signaled the failure.
func (e *Error) Line() int { return e.line }

// Error returns the diagnostic line without a trailing newline:
//
//	[<basename>:<line>] ERR <code>: <message>
func (e *Error) Error() string {
	var b strings.Builder
	b.Grow(len(e.file) + len(e.message) + 24)
	b.WriteByte('[')
	b.WriteString(e.file)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(e.line))
	b.WriteString("] ERR ")
	b.WriteString(strconv.FormatInt(int64(e.code), 10))
	b.WriteString(": ")
	b.WriteString(e.message)
	return b.String()
}

// Render writes the diagnostic line for e to w.
// An empty message means "no error" and renders nothing.
func (e *Error) Render(w io.Writer) {
	if e == nil || e.message == "" {
		return
	}
	fmt.Fprintf(w, "[%s:%d] ERR %d: %s\n", e.file, e.line, int32(e.code), e.message)
}

// Is reports whether target is a [Code] or an *Error with the same code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Code:
		return e.code == t
	case *Error:
		return t != nil && e.code == t.code
	}
	return false
}

// Unwrap returns the error that caused the failure, if any.
func (e *Error) Unwrap() error { return e.cause }

// withCause returns a copy of e that unwraps to cause.
func (e Error) withCause(cause error) Error {
	e.cause = cause
	return e
}

// truncate cuts s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// basename keeps the final path component of a slash- or
// backslash-separated path.
func basename(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	if i := strings.LastIndexByte(path, '\\'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// asError reports whether err is, or wraps, a flux *Error.
func asError(err error) (*Error, bool) {
	var fe *Error
	ok := errors.As(err, &fe)
	return fe, ok
}
