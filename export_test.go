// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// SetExit replaces the process exit used on fatal misuse and returns a
// function restoring the original.
func SetExit(fn func(code int)) (restore func()) {
	old := exit
	exit = fn
	return func() { exit = old }
}

// PoolLen returns the number of guard slots claimed on t.
func PoolLen(t *Thread) int {
	return t.pool.claimed()
}
