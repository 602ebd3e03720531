package progress

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
)

// Reader reassembles events from an event stream regardless of how the
// bytes were chunked in transit.
type Reader struct {
	br *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next event, or io.EOF once the stream is exhausted.
// Comment lines and fields other than "data" are ignored.
func (r *Reader) Next() (*Event, error) {
	var data []string

	for {
		line, err := r.br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if len(data) > 0 {
				return decode(data)
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "data:"):
			value := strings.TrimPrefix(line, "data:")
			data = append(data, strings.TrimPrefix(value, " "))
		}

		if eof {
			if len(data) > 0 {
				return decode(data)
			}
			return nil, io.EOF
		}
	}
}

func decode(data []string) (*Event, error) {
	var event Event
	payload := strings.Join(data, "\n")
	if err := sonic.UnmarshalString(payload, &event); err != nil {
		return nil, fmt.Errorf("invalid event payload %q: %w", payload, err)
	}
	return &event, nil
}

// ReadAll drains r and returns every event in order.
func ReadAll(r io.Reader) ([]*Event, error) {
	reader := NewReader(r)
	var events []*Event
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}
