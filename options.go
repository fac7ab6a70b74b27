// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import "go.uber.org/zap"

// Option configures a [Thread].
type Option func(*Thread)

// WithSink sets the diagnostic sink that receives fatal misuse reports.
// The default writes to standard error.
func WithSink(s Sink) Option {
	return func(t *Thread) {
		if s != nil {
			t.sink = s
		}
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Thread) {
		if l != nil {
			t.log = l
		}
	}
}
