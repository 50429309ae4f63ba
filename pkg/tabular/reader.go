package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Record is one input row.
type Record struct {
	// Index is the 1-based row position in the input. Output file names
	// use it, so it never depends on how many rows were skipped before.
	Index int
	// Payload is the trimmed value of the payload column; empty rows are
	// kept so that Index stays aligned with the file.
	Payload string
}

// Empty reports whether the record has nothing to encode.
func (r Record) Empty() bool { return r.Payload == "" }

type options struct {
	column int
	comma  rune
}

// Option configures Read.
type Option func(*options)

// WithColumn selects the 0-based payload column. Defaults to the first one.
func WithColumn(i int) Option {
	return func(o *options) { o.column = i }
}

// WithComma sets the field delimiter. Defaults to ','.
func WithComma(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.comma = r
		}
	}
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Read parses headerless CSV from r and returns one Record per row, in order.
// Rows may have different field counts; rows without the payload column
// yield an empty payload. An empty input yields no records.
func Read(r io.Reader, opts ...Option) ([]Record, error) {
	o := &options{comma: ','}
	for _, opt := range opts {
		opt(o)
	}
	if o.column < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumn, o.column)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrInputUnreadable, err)
	}
	data = bytes.TrimPrefix(data, bom)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = o.comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrInputMalformed, err)
		}

		var payload string
		if o.column < len(row) {
			payload = strings.TrimSpace(row[o.column])
		}
		records = append(records, Record{Index: len(records) + 1, Payload: payload})
	}
	return records, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string, opts ...Option) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, errors.Join(ErrInputUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, opts...)
}
