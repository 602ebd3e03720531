package generator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Row is one CSV record keyed by its header column names.
type Row map[string]string

const utf8BOM = "\ufeff"

// CSVRows lazily parses r one record at a time. The first record is the
// header. Cells beyond the header are keyed "_<index>". The sequence is
// single-pass; a parse error is yielded once and ends it.
func CSVRows(r io.Reader) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, fmt.Errorf("failed to read CSV header: %w", err))
			return
		}
		header = append([]string(nil), header...)
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], utf8BOM)
		}

		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("failed to read CSV row: %w", err))
				return
			}

			row := make(Row, len(record))
			for i, value := range record {
				if i < len(header) {
					row[header[i]] = value
				} else {
					row[fmt.Sprintf("_%d", i)] = value
				}
			}

			if !yield(row, nil) {
				return
			}
		}
	}
}

// SliceRows adapts in-memory rows to the sequence form CSVRows produces.
func SliceRows(rows []Row) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}
