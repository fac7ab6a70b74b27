// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"io/fs"
	"os"
	"strconv"
)

// Open opens the named file for reading inside s. The file is closed when
// the nearest scope exits; an open error fails with [CodeIO].
func Open(s *Scope, name string) *os.File {
	return openFile(s, name, os.O_RDONLY, 0)
}

// Create creates or truncates the named file inside s. See [Open].
func Create(s *Scope, name string) *os.File {
	return openFile(s, name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

// OpenFile is the generalized open call. See [Open].
func OpenFile(s *Scope, name string, flag int, perm fs.FileMode) *os.File {
	return openFile(s, name, flag, perm)
}

func openFile(s *Scope, name string, flag int, perm fs.FileMode) *os.File {
	t := s.thread
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		t.fail(CodeIO, join("open "+strconv.Quote(name)+" failed", err), err, 3)
	}
	t.register(closeFile, f, true, 3)
	return f
}

func closeFile(f any) { _ = f.(*os.File).Close() }
