package sheets

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one typed row shaped by a Schema. It holds exactly one slot per
// column; a slot without a value holds nil, the absent marker.
//
// Records are treated as immutable once constructed.
type Record struct {
	schema *Schema
	values []any
}

// New constructs a record from positional values, mapped onto the columns in
// declaration order. It is shorthand for NewRecord(values, nil).
func (s *Schema) New(values ...any) (*Record, error) {
	return s.NewRecord(values, nil)
}

// NewRecord constructs a record from positional and named values. Each value
// is converted with its column's ToValue; nil and missing values leave the
// slot absent.
//
// NewRecord fails with ErrArity when there are more positional values than
// columns, ErrUnknownField when a name matches no column, ErrDuplicateArgument
// when a column is given both positionally and by name, ErrMissingField when a
// Required column stays absent, and with the column's *ConversionError when a
// value cannot be converted.
func (s *Schema) NewRecord(positional []any, named map[string]any) (*Record, error) {
	d := s.dialect

	if len(positional) > d.Len() {
		return nil, fmt.Errorf("%w: %s() takes at most %d values (%d given)", ErrArity, s.name, d.Len(), len(positional))
	}

	names := slices.Sorted(maps.Keys(named))
	for _, name := range names {
		if _, ok := d.Column(name); !ok {
			return nil, fmt.Errorf("%w: %s() got an unexpected field %q", ErrUnknownField, s.name, name)
		}
	}
	for _, name := range names {
		if c, _ := d.Column(name); c.Index() < len(positional) {
			return nil, fmt.Errorf("%w: %s() got multiple values for field %q", ErrDuplicateArgument, s.name, name)
		}
	}

	rec := &Record{schema: s, values: make([]any, d.Len())}
	for i, c := range d.columns {
		var raw any
		if i < len(positional) {
			raw = positional[i]
		} else {
			raw = named[c.Name()]
		}

		if raw == nil {
			if c.Required() {
				return nil, fmt.Errorf("%w: %s() needs a value for %q", ErrMissingField, s.name, c.Name())
			}
			continue
		}

		v, err := c.ToValue(raw)
		if err != nil {
			return nil, err
		}
		rec.values[i] = v
	}
	return rec, nil
}

// Schema returns the record's shape.
func (r *Record) Schema() *Schema { return r.schema }

// Lookup returns the value of the named field. ok is false when the name is
// not a column or the field is absent.
func (r *Record) Lookup(name string) (v any, ok bool) {
	i, known := r.schema.dialect.index[name]
	if !known || r.values[i] == nil {
		return nil, false
	}
	return r.values[i], true
}

// Value returns the value of the named field, or nil when it is absent.
func (r *Record) Value(name string) any {
	v, _ := r.Lookup(name)
	return v
}

// IsSet reports whether the named field holds a value.
func (r *Record) IsSet(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Values returns the field values in column order.
func (r *Record) Values() []any {
	return slices.Clone(r.values)
}

// Map returns the field values keyed by field name, absent fields included as nil.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, c := range r.schema.dialect.columns {
		m[c.Name()] = r.values[i]
	}
	return m
}

// Equal reports whether both records have the same field names and equal
// values. Decimals and times compare by value, not representation.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if !slices.Equal(r.schema.dialect.Names(), other.schema.dialect.Names()) {
		return false
	}
	for i := range r.values {
		if !valuesEqual(r.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

func (r *Record) String() string {
	return fmt.Sprintf("%s%v", r.schema.name, r.Map())
}

// Get returns the named field as a T. ok is false when the field is absent,
// unknown, or holds a value of another type.
func Get[T any](r *Record, name string) (v T, ok bool) {
	raw, set := r.Lookup(name)
	if !set {
		return v, false
	}
	v, ok = raw.(T)
	return v, ok
}

func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	default:
		return a == b
	}
}
