package sheets

import (
	"fmt"
	"slices"
)

// FieldDef pairs a field name with its column, in declaration order.
type FieldDef struct {
	Name   string
	Column Column
}

// Field declares a named column for Define.
func Field(name string, column Column) FieldDef {
	return FieldDef{Name: name, Column: column}
}

// Dialect is the complete, immutable format of one record shape: the ordered
// columns plus header and tokenizer settings.
type Dialect struct {
	columns []Column
	index   map[string]int
	config  Config
}

// Columns returns the bound columns in declaration order.
func (d *Dialect) Columns() []Column {
	return slices.Clone(d.columns)
}

// Column looks up a column by field name.
func (d *Dialect) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Names returns the field names in declaration order.
func (d *Dialect) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name()
	}
	return names
}

// Len returns the number of columns.
func (d *Dialect) Len() int { return len(d.columns) }

// HasHeaderRow reports whether files of this dialect start with a header row.
func (d *Dialect) HasHeaderRow() bool { return d.config.HasHeaderRow }

// Config returns the normalised dialect settings.
func (d *Dialect) Config() Config { return d.config }

// Schema is a declared record shape. It is safe for concurrent use; the
// readers and writers it creates are not.
type Schema struct {
	name    string
	dialect *Dialect
}

// Define binds fields, in the order given, into a new Schema. Each column is
// copied and bound to its field name and position, so a column value may be
// shared between schemas. The title of a column without WithTitle defaults
// to its name with underscores replaced by spaces.
//
// Define fails with ErrInvalidField for an empty name or nil column, with
// ErrDuplicateColumn when a name repeats, and with ErrInvalidConfig when cfg
// is unusable.
func Define(name string, cfg Config, fields ...FieldDef) (*Schema, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	d := &Dialect{
		columns: make([]Column, 0, len(fields)),
		index:   make(map[string]int, len(fields)),
		config:  cfg,
	}
	for _, f := range fields {
		if f.Name == "" || f.Column == nil {
			return nil, fmt.Errorf("%w: %s field #%d needs a name and a column", ErrInvalidField, name, len(d.columns)+1)
		}
		if _, dup := d.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateColumn, name, f.Name)
		}
		d.index[f.Name] = len(d.columns)
		d.columns = append(d.columns, f.Column.bind(f.Name, len(d.columns)))
	}

	return &Schema{name: name, dialect: d}, nil
}

// MustDefine is like Define but panics on error. It suits package-level
// schema variables.
func MustDefine(name string, cfg Config, fields ...FieldDef) *Schema {
	s, err := Define(name, cfg, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record shape name given to Define.
func (s *Schema) Name() string { return s.name }

// Dialect returns the schema's shared, read-only dialect.
func (s *Schema) Dialect() *Dialect { return s.dialect }
