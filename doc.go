// Package sheets reads and writes delimited text files as typed records.
//
// A record shape is declared once as an ordered list of typed columns; the
// schema then converts every line of input into a Record and every Record
// back into a line of output. Tokenizing (delimiters, quoting, line breaks)
// is delegated to the swiftcsv subpackage or any other RowReader/RowWriter.
//
// # Declaring a schema
//
//	var Example = sheets.MustDefine("Example", sheets.Config{HasHeaderRow: true},
//		sheets.Field("name", sheets.String()),
//		sheets.Field("birthday", sheets.Date("%d.%m.%Y")),
//		sheets.Field("age", sheets.Integer()),
//	)
//
// Columns are String, Integer, Float, Decimal and Date. Field order is column
// order, both for positional construction and for the file layout. Schemas
// can also be loaded from YAML or JSON documents with LoadSchema.
//
// # Records
//
// Schema.New and Schema.NewRecord validate their arguments (ErrArity,
// ErrUnknownField, ErrDuplicateArgument, ErrMissingField) and convert each
// value with its column. Fields without a value are absent and read back as
// nil. Conversion failures are *ConversionError and match ErrConversion.
//
// # Reading and writing
//
// Schema.NewReader skips the header row once and yields one Record per line
// until io.EOF. Schema.NewWriter emits the header row once, before the first
// record, using title-cased column titles.
package sheets
