// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"io"
	"os"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"go.uber.org/zap"
)

// Sink receives diagnostic reports of failures.
type Sink interface {
	Report(e *Error)
}

// stderrSink is the default sink of every Thread.
var stderrSink Sink = NewWriterSink(os.Stderr)

// WriterSink renders each report as one diagnostic line on a writer.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink returns a sink that renders reports to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Report implements Sink.
func (s *WriterSink) Report(e *Error) {
	e.Render(s.w)
}

// LoggerSink logs each report as a structured error entry.
type LoggerSink struct {
	log *zap.Logger
}

// NewLoggerSink returns a sink that logs reports to l.
func NewLoggerSink(l *zap.Logger) *LoggerSink {
	return &LoggerSink{log: l}
}

// Report implements Sink. Reports with an empty message are ignored.
func (s *LoggerSink) Report(e *Error) {
	if e == nil || e.message == "" {
		return
	}
	s.log.Error("flux: failure",
		zap.String("file", e.file),
		zap.Int("line", e.line),
		zap.Int32("code", int32(e.code)),
		zap.String("message", e.message),
	)
}

// queueCapacity is the bounded capacity of a QueueSink.
const queueCapacity = 64

// QueueSink hands error copies from the owning goroutine to a single
// consumer through a bounded lock-free SPSC queue, so reporting never
// blocks and never performs I/O on the failing goroutine.
//
// Exactly one goroutine may report and exactly one may consume.
type QueueSink struct {
	q       lfq.SPSC[Error]
	dropped atomix.Uint32
}

// NewQueueSink creates an empty QueueSink.
func NewQueueSink() *QueueSink {
	s := &QueueSink{}
	s.q.Init(queueCapacity)
	return s
}

// TryReport enqueues a copy of e.
// Returns iox.ErrWouldBlock when the queue is full.
func (s *QueueSink) TryReport(e *Error) error {
	return s.q.Enqueue(e)
}

// Report implements Sink. A report that does not fit is dropped and counted.
func (s *QueueSink) Report(e *Error) {
	if e == nil {
		return
	}
	if err := s.TryReport(e); err != nil {
		s.dropped.Add(1)
	}
}

// Dropped returns the number of reports dropped because the queue was full.
func (s *QueueSink) Dropped() uint32 {
	return s.dropped.Load()
}

// Poll dequeues one report without waiting.
// Returns iox.ErrWouldBlock when the queue is empty.
func (s *QueueSink) Poll() (Error, error) {
	return s.q.Dequeue()
}

// Next waits for the next report, backing off with iox.Backoff while the
// queue is empty.
func (s *QueueSink) Next() Error {
	var bo iox.Backoff
	for {
		e, err := s.q.Dequeue()
		if err == nil {
			return e
		}
		bo.Wait()
	}
}

// Drain forwards every queued report to dst and returns how many it forwarded.
func (s *QueueSink) Drain(dst Sink) int {
	n := 0
	for {
		e, err := s.q.Dequeue()
		if err != nil {
			return n
		}
		dst.Report(&e)
		n++
	}
}
