package progress

import (
	"bufio"
	"bytes"
	"errors"
	"net"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/certgen-api/internal/generator"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

func sampleResult() *generator.BulkResult {
	return &generator.BulkResult{
		Certificates: []*model.Certificate{
			{ID: "c1", StudentName: "Ann", VerificationCode: "AAAA1111"},
			{ID: "c2", StudentName: "Bob", VerificationCode: "BBBB2222"},
		},
		ZipPath: "/generated/certificates_bulk_1.zip",
	}
}

func TestStreamWriter_Framing(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(bufio.NewWriter(&buf))

	w.Progress(0, 2)

	assert.Equal(t, "data: {\"type\":\"progress\",\"current\":0,\"total\":2}\n\n", buf.String())
}

func TestStreamWriter_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		events func(w *StreamWriter)
		want   []string
	}{
		{
			name: "success",
			events: func(w *StreamWriter) {
				w.Progress(0, 2)
				w.Progress(1, 2)
				w.Progress(2, 2)
				w.Done(sampleResult())
			},
			want: []string{TypeProgress, TypeProgress, TypeProgress, TypeDone},
		},
		{
			name: "failure",
			events: func(w *StreamWriter) {
				w.Progress(0, 3)
				w.Fail(errors.New("template not found"))
			},
			want: []string{TypeProgress, TypeError},
		},
		{
			name: "nothing after terminal event",
			events: func(w *StreamWriter) {
				w.Fail(errors.New("boom"))
				w.Progress(1, 1)
				w.Done(sampleResult())
			},
			want: []string{TypeError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.events(NewStreamWriter(bufio.NewWriter(&buf)))

			// one byte at a time to exercise reassembly across chunk boundaries
			events, err := ReadAll(iotest.OneByteReader(bytes.NewReader(buf.Bytes())))
			require.NoError(t, err)

			var types []string
			for _, e := range events {
				types = append(types, e.Type)
			}
			assert.Equal(t, tt.want, types)
		})
	}
}

func TestStreamWriter_DonePayload(t *testing.T) {
	var buf bytes.Buffer
	NewStreamWriter(bufio.NewWriter(&buf)).Done(sampleResult())

	events, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, events, 1)

	done := events[0]
	assert.True(t, done.Terminal())
	assert.Equal(t, "2 certificates generated.", done.Message)
	assert.Equal(t, 2, done.Count)
	assert.Equal(t, "/generated/certificates_bulk_1.zip", done.ZipDownloadURL)
	require.Len(t, done.Certificates, 2)
	assert.Equal(t, "BBBB2222", done.Certificates[1].VerificationCode)
}

type failingWriter struct {
	writes int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("broken pipe")
}

func TestStreamWriter_DropsAfterWriteFailure(t *testing.T) {
	sink := &failingWriter{}
	w := NewStreamWriter(bufio.NewWriterSize(sink, 16))

	w.Progress(0, 3)
	require.True(t, w.Broken())
	writes := sink.writes

	w.Progress(1, 3)
	w.Progress(2, 3)
	w.Fail(errors.New("late"))

	assert.Equal(t, writes, sink.writes, "no further writes once the consumer is gone")
}

func TestReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []*Event
	}{
		{
			name:  "crlf and comments",
			input: ": keep-alive\r\ndata: {\"type\":\"progress\",\"current\":1,\"total\":4}\r\n\r\n",
			want:  []*Event{{Type: TypeProgress, Current: 1, Total: 4}},
		},
		{
			name:  "no space after colon",
			input: "data:{\"type\":\"error\",\"error\":\"x\"}\n\n",
			want:  []*Event{{Type: TypeError, Error: "x"}},
		},
		{
			name:  "unterminated final event",
			input: "data: {\"type\":\"progress\",\"current\":0,\"total\":1}",
			want:  []*Event{{Type: TypeProgress, Current: 0, Total: 1}},
		},
		{
			name:  "other fields ignored",
			input: "event: message\nid: 7\ndata: {\"type\":\"progress\",\"current\":2,\"total\":2}\n\n",
			want:  []*Event{{Type: TypeProgress, Current: 2, Total: 2}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := ReadAll(iotest.HalfReader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, events)
		})
	}
}

func TestReader_InvalidPayload(t *testing.T) {
	_, err := ReadAll(strings.NewReader("data: {not json}\n\n"))
	assert.ErrorContains(t, err, "invalid event payload")
}

func TestStreamWriter_StalledConsumerTimesOut(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	// client never reads
	w := NewStreamWriter(bufio.NewWriter(server), WithWriteDeadline(server, 50*time.Millisecond))

	finished := make(chan struct{})
	go func() {
		w.Progress(1, 10)
		w.Progress(2, 10)
		w.Done(sampleResult())
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("writer blocked on a consumer that stopped reading")
	}
	assert.True(t, w.Broken())
}

type deadlineRecorder struct {
	bytes.Buffer
	deadlines []time.Time
}

func (d *deadlineRecorder) SetWriteDeadline(t time.Time) error {
	d.deadlines = append(d.deadlines, t)
	return nil
}

func TestStreamWriter_ArmsDeadlinePerEvent(t *testing.T) {
	conn := &deadlineRecorder{}
	w := NewStreamWriter(bufio.NewWriter(conn), WithWriteDeadline(conn, time.Minute))

	before := time.Now()
	w.Progress(0, 2)
	w.Progress(1, 2)
	w.Done(sampleResult())

	require.Len(t, conn.deadlines, 3)
	for _, d := range conn.deadlines {
		assert.True(t, d.After(before.Add(59*time.Second)))
	}
	assert.False(t, w.Broken())

	events, err := ReadAll(&conn.Buffer)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
