// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Fixed limits. They never grow at run time.
const (
	// MaxDepth is the maximum nesting depth of protected scopes per Thread.
	// Entering one more scope aborts the process.
	MaxDepth = 64

	// MaxGuards is the capacity of a Thread's guard pool. Registering a
	// guard beyond it fails with [CodeLimit].
	MaxGuards = 2048

	// MaxMessage is the maximum number of message bytes kept in an [Error].
	MaxMessage = 511

	// MaxFile is the maximum number of source basename bytes kept in an [Error].
	MaxFile = 63
)
