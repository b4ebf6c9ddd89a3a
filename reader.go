package sheets

import (
	"io"
	"iter"
	"log/slog"

	"github.com/oleg578/sheets/swiftcsv"
)

// RowReader is the tokenizer contract a Reader consumes: each call yields the
// raw fields of the next line, and io.EOF once the input is exhausted.
// *swiftcsv.Reader and *encoding/csv.Reader both satisfy it.
type RowReader interface {
	Read() ([]string, error)
}

// Reader turns rows of raw fields into Records of one Schema.
//
// A Reader is forward-only and not restartable. It is not safe for
// concurrent use.
type Reader struct {
	schema        *Schema
	rows          RowReader
	headerPending bool
	row           int
	logger        *slog.Logger
}

// NewReader returns a Reader over r using a swiftcsv tokenizer configured
// from the schema's dialect. Rows may be shorter than the schema (trailing
// fields stay absent); rows longer than the schema fail with ErrArity.
func (s *Schema) NewReader(r io.Reader, opts ...Option) *Reader {
	cfg := s.dialect.config
	tok := swiftcsv.NewReader(r)
	tok.Comma = cfg.Delimiter
	tok.Quote = cfg.Quote
	tok.FieldsPerRecord = -1
	return s.ReaderFrom(tok, opts...)
}

// ReaderFrom returns a Reader over an arbitrary tokenizer. The dialect's
// tokenizer settings are not applied to rows; only its header flag is.
func (s *Schema) ReaderFrom(rows RowReader, opts ...Option) *Reader {
	o := newOptions(opts)
	return &Reader{
		schema:        s,
		rows:          rows,
		headerPending: s.dialect.config.HasHeaderRow,
		logger:        o.logger.With(slog.String("schema", s.name)),
	}
}

// Read returns the next record. On the first call of a dialect with a header
// row, one line is consumed and discarded unchecked; this happens once per
// Reader even if that line fails to parse. Read returns io.EOF when the
// input is exhausted.
//
// Empty fields of non-string columns, missing trailing fields and blank lines
// leave the matching slots absent, mirroring how Writer renders absent values.
//
// Tokenizer and construction errors are wrapped in *RowError. The failing
// line has been consumed, so a later Read continues with the next one.
func (r *Reader) Read() (*Record, error) {
	if r.headerPending {
		r.headerPending = false
		if _, err := r.next(); err != nil {
			return nil, err
		}
		r.logger.Debug("skipped header row")
	}

	fields, err := r.next()
	if err != nil {
		return nil, err
	}

	rec, err := r.schema.New(r.values(fields)...)
	if err != nil {
		r.logger.Debug("rejected row", slog.Int("row", r.row), slog.Any("err", err))
		return nil, &RowError{Row: r.row, Err: err}
	}
	return rec, nil
}

// values maps raw fields onto constructor arguments. An empty field in a
// non-string column is the written form of an absent value, so it becomes nil.
func (r *Reader) values(fields []string) []any {
	columns := r.schema.dialect.columns
	values := make([]any, len(fields))
	for i, f := range fields {
		if f == "" && i < len(columns) && columns[i].Kind() != KindString {
			continue
		}
		values[i] = f
	}
	return values
}

// next pulls one row from the tokenizer and counts it.
func (r *Reader) next() ([]string, error) {
	fields, err := r.rows.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	r.row++
	if err != nil {
		return nil, &RowError{Row: r.row, Err: err}
	}
	return fields, nil
}

// ReadAll reads the remaining records. It returns nil and the first error
// other than io.EOF.
func (r *Reader) ReadAll() ([]*Record, error) {
	var records []*Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// All returns a single-use iterator over the remaining records. Iteration
// stops after the first error, which is yielded with a nil record, and at
// the end of input.
func (r *Reader) All() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			rec, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}
