package swiftcsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

var (
	// ErrBareQuote is returned when an unexpected quote is found in an unquoted field.
	ErrBareQuote = errors.New("swiftcsv: bare quote in non-quoted field")
	// ErrUnterminatedQuote is returned when a quoted field is not closed before EOF.
	ErrUnterminatedQuote = errors.New("swiftcsv: unterminated quoted field")
	// ErrFieldCount is returned when a record contains an unexpected number of fields.
	ErrFieldCount = errors.New("swiftcsv: wrong number of fields")
)

// ParseError contains location information for CSV parsing errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("swiftcsv: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reader splits delimited text into records of raw fields.
type Reader struct {
	src *bufio.Reader

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// FieldsPerRecord controls record width checks. Zero captures the width of
	// the first record, a positive value is enforced on every record and a
	// negative value disables the check.
	FieldsPerRecord int

	field    []byte
	record   []string
	line     int
	column   int
	finished bool
}

// NewReader creates a Reader that consumes CSV data from r. It panics if r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("swiftcsv: reader source cannot be nil")
	}

	return &Reader{
		src:    bufio.NewReaderSize(r, defaultBufferSize),
		Comma:  ',',
		Quote:  '"',
		field:  make([]byte, 0, 64),
		line:   1,
		column: 1,
	}
}

// Read parses the next record from the underlying stream. io.EOF signals that
// no more records remain. The returned slice is never reused by later calls.
// A blank line yields an empty, non-nil record.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil || r.finished {
		return nil, io.EOF
	}

	comma, quote := r.separators()

	r.record = make([]string, 0, max(r.FieldsPerRecord, 4))
	r.field = r.field[:0]

	var (
		started  bool // any byte of this record was consumed
		inQuotes bool
		quoted   bool // the current field opened with a quote
	)

	for {
		b, err := r.src.ReadByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			r.finished = true
			if inQuotes {
				return nil, r.errorAt(r.column, ErrUnterminatedQuote)
			}
			if !started {
				return nil, io.EOF
			}
			return r.closeRecord()
		}

		started = true
		pos := r.column
		r.column++

		if inQuotes {
			switch b {
			case quote:
				escaped, err := r.skipIf(quote)
				if err != nil {
					return nil, err
				}
				if escaped {
					r.field = append(r.field, quote)
					continue
				}
				inQuotes = false
			case '\n':
				r.field = append(r.field, b)
				r.newline()
			default:
				r.field = append(r.field, b)
			}
			continue
		}

		switch b {
		case comma:
			r.closeField()
			quoted = false
		case '\n':
			r.newline()
			if r.blank(quoted) {
				return r.record, nil
			}
			return r.closeRecord()
		case '\r':
			if _, err := r.skipIf('\n'); err != nil {
				return nil, err
			}
			r.newline()
			if r.blank(quoted) {
				return r.record, nil
			}
			return r.closeRecord()
		case quote:
			if len(r.field) == 0 && !quoted {
				inQuotes = true
				quoted = true
				continue
			}
			return nil, r.errorAt(pos, ErrBareQuote)
		default:
			r.field = append(r.field, b)
		}
	}
}

// ReadAll exhausts the reader and returns every record, or the first non-EOF
// error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

func (r *Reader) separators() (comma, quote byte) {
	comma, quote = r.Comma, r.Quote
	if comma == 0 {
		comma = ','
	}
	if quote == 0 {
		quote = '"'
	}
	return comma, quote
}

// skipIf consumes the next byte when it equals want. Hitting EOF is not an
// error here; the next ReadByte reports it.
func (r *Reader) skipIf(want byte) (bool, error) {
	next, err := r.src.Peek(1)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if next[0] != want {
		return false, nil
	}
	_, _ = r.src.ReadByte()
	r.column++
	return true, nil
}

func (r *Reader) newline() {
	r.line++
	r.column = 1
}

// blank reports whether the line just ended held no bytes at all. Blank
// lines yield an empty record and are exempt from the width check.
func (r *Reader) blank(quoted bool) bool {
	return len(r.record) == 0 && len(r.field) == 0 && !quoted
}

func (r *Reader) closeField() {
	r.record = append(r.record, string(r.field))
	r.field = r.field[:0]
}

func (r *Reader) closeRecord() ([]string, error) {
	r.closeField()

	switch {
	case r.FieldsPerRecord == 0:
		r.FieldsPerRecord = len(r.record)
	case r.FieldsPerRecord > 0 && len(r.record) != r.FieldsPerRecord:
		return r.record, ErrFieldCount
	}
	return r.record, nil
}

func (r *Reader) errorAt(column int, err error) error {
	return &ParseError{Line: r.line, Column: column, Err: err}
}
