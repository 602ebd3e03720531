package progress

import (
	"bufio"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sunthewhat/certgen-api/internal/generator"
)

// StreamWriter frames bulk generation events as "data: <json>\n\n" and
// flushes each one. After the first write failure the consumer is assumed
// gone and every later event is dropped; generation itself keeps running.
type StreamWriter struct {
	w       *bufio.Writer
	conn    WriteDeadliner
	timeout time.Duration
	broken  bool
	closed  bool
}

var _ generator.Sink = (*StreamWriter)(nil)

// DefaultWriteTimeout bounds how long a single event may wait on a consumer
// that stopped reading.
const DefaultWriteTimeout = 30 * time.Second

// WriteDeadliner is the part of net.Conn the writer needs.
type WriteDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

type Option func(*StreamWriter)

// WithWriteDeadline arms a write deadline on conn before every event, so a
// stalled consumer turns into a write error instead of blocking forever.
func WithWriteDeadline(conn WriteDeadliner, timeout time.Duration) Option {
	return func(s *StreamWriter) {
		s.conn = conn
		s.timeout = timeout
	}
}

func NewStreamWriter(w *bufio.Writer, opts ...Option) *StreamWriter {
	s := &StreamWriter{w: w}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StreamWriter) Progress(current, total int) {
	s.send(progressEvent{Type: TypeProgress, Current: current, Total: total})
}

func (s *StreamWriter) Done(result *generator.BulkResult) {
	s.send(doneEvent{
		Type:           TypeDone,
		Message:        result.Message(),
		Count:          result.Count(),
		Certificates:   result.Certificates,
		ZipDownloadURL: result.ZipPath,
	})
	s.closed = true
}

func (s *StreamWriter) Fail(err error) {
	s.send(errorEvent{Type: TypeError, Error: err.Error()})
	s.closed = true
}

// Broken reports whether a write to the consumer has failed.
func (s *StreamWriter) Broken() bool {
	return s.broken
}

func (s *StreamWriter) send(event any) {
	if s.broken || s.closed {
		return
	}

	data, err := sonic.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode progress event", "error", err)
		return
	}

	if err := s.write(data); err != nil {
		s.broken = true
		slog.Warn("Progress stream consumer disconnected", "error", err)
	}
}

func (s *StreamWriter) write(data []byte) error {
	if s.conn != nil && s.timeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
			return err
		}
	}
	if _, err := s.w.WriteString("data: "); err != nil {
		return err
	}
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	if _, err := s.w.WriteString("\n\n"); err != nil {
		return err
	}
	return s.w.Flush()
}
