// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"code.hybscloud.com/iox"
)

// Classify returns the failure code used by [Thread.Must] for err:
//   - a flux [*Error] keeps its code, and a [Code] is itself;
//   - [iox.ErrWouldBlock] is [CodeLimit] (a bounded resource is full);
//   - a [syscall.Errno] is passed through as the OS error number;
//   - a [*strconv.NumError] is [CodeParse];
//   - [os.ErrInvalid] is [CodeInvalid];
//   - anything else is [CodeIO].
func Classify(err error) Code {
	if fe, ok := asError(err); ok {
		return fe.code
	}
	var code Code
	if errors.As(err, &code) {
		return code
	}
	if iox.IsWouldBlock(err) {
		return CodeLimit
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return Code(errno)
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return CodeParse
	}
	if errors.Is(err, os.ErrInvalid) {
		return CodeInvalid
	}
	return CodeIO
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// join formats "message: err", or just err when message is empty.
func join(message string, err error) string {
	if message == "" {
		return err.Error()
	}
	return message + ": " + err.Error()
}
