package swiftcsv

import (
	"bufio"
	"errors"
	"io"
)

var (
	errNilWriter      = errors.New("swiftcsv: writer is nil")
	errWriterNoTarget = errors.New("swiftcsv: writer destination cannot be nil")
)

// Writer joins fields into delimited lines with configurable delimiters and quoting rules.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// UseCRLF writes records terminated with \r\n when set.
	UseCRLF bool
	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	line []byte
	err  error
}

// NewWriter creates a Writer buffering output to w. It panics if w is nil.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:   bufio.NewWriterSize(w, defaultBufferSize),
		Comma: ',',
		Quote: '"',
		line:  make([]byte, 0, 128),
	}
}

// Write emits a single record terminated with the configured newline sequence.
// The line is assembled in memory first, so a record is either buffered whole
// or not at all.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	comma, quote := w.Comma, w.Quote
	if comma == 0 {
		comma = ','
	}
	if quote == 0 {
		quote = '"'
	}

	line := w.line[:0]
	if len(record) == 1 && record[0] == "" {
		// A lone empty field is quoted so it does not read back as a blank line.
		line = append(line, quote, quote)
	} else {
		for i, field := range record {
			if i > 0 {
				line = append(line, comma)
			}
			line = w.appendField(line, field, comma, quote)
		}
	}
	if w.UseCRLF {
		line = append(line, '\r')
	}
	line = append(line, '\n')
	w.line = line

	if _, err := w.dst.Write(line); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) appendField(line []byte, field string, comma, quote byte) []byte {
	if !w.AlwaysQuote && !fieldNeedsQuote(field, comma, quote) {
		return append(line, field...)
	}

	line = append(line, quote)
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			line = append(line, quote)
		}
		line = append(line, field[i])
	}
	return append(line, quote)
}

func fieldNeedsQuote(field string, comma, quote byte) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case quote, comma, '\n', '\r':
			return true
		}
	}
	return false
}
