package sheets

import (
	"errors"
	"fmt"
)

var (
	// ErrConversion matches every *ConversionError via errors.Is.
	ErrConversion = errors.New("sheets: conversion failed")
	// ErrArity is returned when more positional values are given than the schema has columns.
	ErrArity = errors.New("sheets: too many positional values")
	// ErrUnknownField is returned when a named value does not match any column.
	ErrUnknownField = errors.New("sheets: unknown field")
	// ErrDuplicateArgument is returned when a column is given both positionally and by name.
	ErrDuplicateArgument = errors.New("sheets: multiple values for field")
	// ErrMissingField is returned when a required column has no value.
	ErrMissingField = errors.New("sheets: missing required field")

	// ErrDuplicateColumn is returned by Define when two fields share a name.
	ErrDuplicateColumn = errors.New("sheets: duplicate column name")
	// ErrInvalidField is returned by Define for an unnamed field or a nil column.
	ErrInvalidField = errors.New("sheets: invalid field")
	// ErrInvalidConfig is returned for dialect settings the tokenizer cannot honour.
	ErrInvalidConfig = errors.New("sheets: invalid dialect config")

	// ErrInvalidSchema is returned when a schema document cannot describe a record shape.
	ErrInvalidSchema = errors.New("sheets: invalid schema document")
	// ErrUnknownColumnType is returned when a schema document names an unsupported column type.
	ErrUnknownColumnType = errors.New("sheets: unknown column type")

	// ErrNilRecord is returned when a Writer is handed a nil record.
	ErrNilRecord = errors.New("sheets: nil record")

	errUnsupportedType = errors.New("unsupported value type")
	errDayOutOfRange   = errors.New("day is out of range for month")
)

// ConversionError reports a value that a column could not convert.
type ConversionError struct {
	Column string
	Kind   Kind
	Value  any
	Err    error
}

// Error describes the failed conversion, naming the column and the offending value.
func (e *ConversionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("sheets: column %q: cannot convert %#v to %s: %v", e.Column, e.Value, e.Kind, e.Err)
}

// Unwrap returns the underlying cause, typically a strconv, decimal or time parsing error.
func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// RowError attaches the input row number to an error raised while reading.
// Row counts physical records from 1 and includes the header row.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("sheets: row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
