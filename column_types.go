package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
	"github.com/shopspring/decimal"
)

// DefaultDateFormat is the strftime-style pattern used by Date("").
const DefaultDateFormat = "%Y-%m-%d"

// StringColumn holds generic text. Values are stored as string.
type StringColumn struct{ field }

// String declares a text column.
func String(opts ...ColumnOption) *StringColumn {
	c := &StringColumn{}
	c.apply(opts)
	return c
}

func (c *StringColumn) Kind() Kind { return KindString }

func (c *StringColumn) ToValue(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, c.fail(KindString, raw, errUnsupportedType)
}

func (c *StringColumn) ToText(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	s, err := c.ToValue(v)
	if err != nil {
		return "", err
	}
	return s.(string), nil
}

func (c *StringColumn) bind(name string, index int) Column {
	bound := *c
	bound.attach(name, index)
	return &bound
}

// IntegerColumn holds base-10 integers. Values are stored as int64.
type IntegerColumn struct{ field }

// Integer declares an integer column.
func Integer(opts ...ColumnOption) *IntegerColumn {
	c := &IntegerColumn{}
	c.apply(opts)
	return c
}

func (c *IntegerColumn) Kind() Kind { return KindInteger }

func (c *IntegerColumn) ToValue(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, c.fail(KindInteger, raw, err)
		}
		return n, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, c.fail(KindInteger, raw, strconv.ErrRange)
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, c.fail(KindInteger, raw, strconv.ErrRange)
		}
		return int64(v), nil
	}
	return nil, c.fail(KindInteger, raw, errUnsupportedType)
}

func (c *IntegerColumn) ToText(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	n, err := c.ToValue(v)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.(int64), 10), nil
}

func (c *IntegerColumn) bind(name string, index int) Column {
	bound := *c
	bound.attach(name, index)
	return &bound
}

// FloatColumn holds IEEE 754 doubles. Values are stored as float64.
type FloatColumn struct{ field }

// Float declares a floating point column.
func Float(opts ...ColumnOption) *FloatColumn {
	c := &FloatColumn{}
	c.apply(opts)
	return c
}

func (c *FloatColumn) Kind() Kind { return KindFloat }

func (c *FloatColumn) ToValue(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, c.fail(KindFloat, raw, err)
		}
		return f, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	}
	return nil, c.fail(KindFloat, raw, errUnsupportedType)
}

func (c *FloatColumn) ToText(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	f, err := c.ToValue(v)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f.(float64), 'g', -1, 64), nil
}

func (c *FloatColumn) bind(name string, index int) Column {
	bound := *c
	bound.attach(name, index)
	return &bound
}

// DecimalColumn holds arbitrary-precision decimals. Values are stored as
// decimal.Decimal.
type DecimalColumn struct{ field }

// Decimal declares an exact decimal column.
func Decimal(opts ...ColumnOption) *DecimalColumn {
	c := &DecimalColumn{}
	c.apply(opts)
	return c
}

func (c *DecimalColumn) Kind() Kind { return KindDecimal }

func (c *DecimalColumn) ToValue(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, c.fail(KindDecimal, raw, err)
		}
		return d, nil
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, c.fail(KindDecimal, raw, strconv.ErrRange)
		}
		return decimal.NewFromFloat(v), nil
	}
	return nil, c.fail(KindDecimal, raw, errUnsupportedType)
}

func (c *DecimalColumn) ToText(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	d, err := c.ToValue(v)
	if err != nil {
		return "", err
	}
	return d.(decimal.Decimal).String(), nil
}

func (c *DecimalColumn) bind(name string, index int) Column {
	bound := *c
	bound.attach(name, index)
	return &bound
}

// DateColumn holds calendar dates written with a strftime-style pattern.
// Parsed values are stored as time.Time at midnight UTC; time.Time input is
// passed through unchanged.
type DateColumn struct {
	field
	format string

	// dayFormat is format with the day of month moved to the minute field,
	// or "" when the day cannot be checked that way.
	dayFormat string
}

// Date declares a date column using format, or DefaultDateFormat when format is empty.
func Date(format string, opts ...ColumnOption) *DateColumn {
	if format == "" {
		format = DefaultDateFormat
	}
	c := &DateColumn{format: format, dayFormat: dayAsMinute(format)}
	c.apply(opts)
	return c
}

func (c *DateColumn) Kind() Kind { return KindDate }

// Format returns the strftime-style pattern of the column.
func (c *DateColumn) Format() string { return c.format }

func (c *DateColumn) ToValue(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := timefmt.Parse(v, c.format)
		if err != nil {
			return nil, c.fail(KindDate, raw, err)
		}
		if !c.dayInMonth(v, t) {
			return nil, c.fail(KindDate, raw, errDayOutOfRange)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return nil, c.fail(KindDate, raw, errUnsupportedType)
}

// dayInMonth reports whether the day written in text fits the parsed month.
// timefmt accepts any day up to 31 and lets time.Date carry the excess into
// the next month, so 31.02 comes back as the 2nd or 3rd of March. Parsing
// again with the day read as a minute recovers the written day.
func (c *DateColumn) dayInMonth(text string, t time.Time) bool {
	if t.Day() > 3 || c.dayFormat == "" {
		return true
	}
	written, err := timefmt.Parse(text, c.dayFormat)
	if err != nil {
		return true
	}
	return written.Year() == t.Year() && written.Month() == t.Month() && written.Minute() == t.Day()
}

// dayAsMinute rewrites the day directives of a strftime pattern as %M. It
// returns "" when the pattern has no day directive or already reads minutes.
func dayAsMinute(format string) string {
	var (
		b   strings.Builder
		day bool
	)
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		switch d := format[i]; d {
		case 'd', 'e':
			b.WriteString("%M")
			day = true
		case 'F':
			b.WriteString("%Y-%m-%M")
			day = true
		case 'D', 'x':
			b.WriteString("%m/%M/%y")
			day = true
		case 'v':
			b.WriteString("%M-%b-%Y")
			day = true
		case 'M', 'c', '+', 'T', 'X', 'r', 'R':
			return ""
		default:
			b.WriteByte('%')
			b.WriteByte(d)
		}
	}
	if !day {
		return ""
	}
	return b.String()
}

func (c *DateColumn) ToText(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	t, err := c.ToValue(v)
	if err != nil {
		return "", err
	}
	return timefmt.Format(t.(time.Time), c.format), nil
}

func (c *DateColumn) bind(name string, index int) Column {
	bound := *c
	bound.attach(name, index)
	return &bound
}
