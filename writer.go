package sheets

import (
	"io"
	"log/slog"

	"github.com/oleg578/sheets/swiftcsv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RowWriter is the tokenizer contract a Writer feeds: each call emits one
// line built from the given fields. If the value also has a Flush() error or
// Flush() method, Writer.Flush calls it.
type RowWriter interface {
	Write(fields []string) error
}

// Writer turns Records into rows of text fields.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	dialect       *Dialect
	rows          RowWriter
	headerPending bool
	logger        *slog.Logger
	err           error
}

// NewWriter returns a Writer to w using a buffered swiftcsv tokenizer
// configured from the schema's dialect. Call Flush when done.
func (s *Schema) NewWriter(w io.Writer, opts ...Option) *Writer {
	cfg := s.dialect.config
	tok := swiftcsv.NewWriter(w)
	tok.Comma = cfg.Delimiter
	tok.Quote = cfg.Quote
	tok.UseCRLF = cfg.LineTerminator == CRLF
	tok.AlwaysQuote = cfg.AlwaysQuote
	return s.WriterTo(tok, opts...)
}

// WriterTo returns a Writer feeding an arbitrary tokenizer. The dialect's
// tokenizer settings are not applied; only its header flag is.
func (s *Schema) WriterTo(rows RowWriter, opts ...Option) *Writer {
	o := newOptions(opts)
	return &Writer{
		dialect:       s.dialect,
		rows:          rows,
		headerPending: s.dialect.config.HasHeaderRow,
		logger:        o.logger.With(slog.String("schema", s.name)),
	}
}

// Write emits rec as one line, each field rendered by its column's ToText.
// Before the first record of a dialect with a header row, a header line of
// title-cased column titles is emitted.
//
// Fields are looked up on rec by name, so a record of another schema is
// written with the matching fields and blanks for the rest. After a failure
// the Writer keeps returning the first error.
func (w *Writer) Write(rec *Record) error {
	if w.err != nil {
		return w.err
	}
	if rec == nil {
		return ErrNilRecord
	}

	if w.headerPending {
		caser := cases.Title(language.Und)
		titles := make([]string, w.dialect.Len())
		for i, c := range w.dialect.columns {
			titles[i] = caser.String(c.Title())
		}
		if err := w.emit(titles); err != nil {
			return err
		}
		w.headerPending = false
		w.logger.Debug("wrote header row", slog.Any("titles", titles))
	}

	fields := make([]string, w.dialect.Len())
	for i, c := range w.dialect.columns {
		text, err := c.ToText(rec.Value(c.Name()))
		if err != nil {
			return err
		}
		fields[i] = text
	}
	return w.emit(fields)
}

// WriteAll writes records in order, stopping at the first error.
func (w *Writer) WriteAll(records []*Record) error {
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes a buffering tokenizer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	switch f := w.rows.(type) {
	case interface{ Flush() error }:
		if err := f.Flush(); err != nil {
			w.err = err
			return err
		}
	case interface{ Flush() }:
		f.Flush()
	}
	return nil
}

// Error reports the first tokenizer error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

func (w *Writer) emit(fields []string) error {
	if err := w.rows.Write(fields); err != nil {
		w.err = err
		return err
	}
	return nil
}
