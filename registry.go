// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// registry recycles Threads for [Do] and [Go].
// Initialised once, on first use.
type registry struct {
	once sync.Once
	pool sync.Pool
	live atomix.Uint32
}

var threads registry

func (r *registry) get(opts []Option) *Thread {
	r.once.Do(func() {
		r.pool.New = func() any {
			return &Thread{top: -1}
		}
	})
	t := r.pool.Get().(*Thread)
	t.configure(opts)
	r.live.Add(1)
	return t
}

func (r *registry) put(t *Thread) {
	t.sink = nil
	t.log = nil
	r.live.Add(^uint32(0))
	r.pool.Put(t)
}

// Do runs fn on the calling goroutine with a Thread from the registry.
// The Thread is torn down when fn returns or panics; it must not be
// retained past that point.
func Do(fn func(t *Thread), opts ...Option) {
	t := threads.get(opts)
	defer threads.put(t)
	defer t.Close()
	fn(t)
}

// Go runs fn on a new goroutine with its own Thread from the registry.
// The returned channel is closed after fn has returned and its Thread
// has been torn down.
func Go(fn func(t *Thread), opts ...Option) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Do(fn, opts...)
	}()
	return done
}

// Live returns the number of registry Threads currently in use.
func Live() int {
	return int(threads.live.Load())
}
