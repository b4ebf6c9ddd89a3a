package sheets

import "strings"

// Kind tags the value type a Column converts to.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInteger
	KindFloat
	KindDecimal
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Column is the conversion contract for one field of a record. The set of
// implementations is closed: StringColumn, IntegerColumn, FloatColumn,
// DecimalColumn and DateColumn.
//
// ToValue turns raw input (normally a string from the tokenizer) into the
// column's native value. ToText is its inverse; it renders nil as the empty
// string. For any value v returned by ToValue, ToValue(ToText(v)) equals v.
type Column interface {
	Name() string
	Title() string
	Index() int
	Required() bool
	Kind() Kind

	ToValue(raw any) (any, error)
	ToText(v any) (string, error)

	bind(name string, index int) Column
}

// ColumnOption customises a column before it is bound into a schema.
type ColumnOption func(*field)

// WithTitle sets the display title used for the header row. An empty title
// is kept as is rather than derived from the field name.
func WithTitle(title string) ColumnOption {
	return func(f *field) {
		f.title = title
		f.titled = true
	}
}

// Required marks the column as mandatory: constructing a record without a
// value for it fails with ErrMissingField.
func Required() ColumnOption {
	return func(f *field) {
		f.required = true
	}
}

// field holds the metadata every column variant shares.
type field struct {
	name     string
	title    string
	titled   bool
	required bool
	index    int
}

func (f *field) apply(opts []ColumnOption) {
	for _, opt := range opts {
		opt(f)
	}
}

func (f *field) attach(name string, index int) {
	f.name = name
	f.index = index
	if !f.titled {
		f.title = strings.ReplaceAll(name, "_", " ")
	}
}

func (f *field) Name() string   { return f.name }
func (f *field) Title() string  { return f.title }
func (f *field) Index() int     { return f.index }
func (f *field) Required() bool { return f.required }

func (f *field) fail(kind Kind, value any, err error) error {
	return &ConversionError{Column: f.name, Kind: kind, Value: value, Err: err}
}
