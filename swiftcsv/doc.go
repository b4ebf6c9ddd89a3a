// Package swiftcsv is the line tokenizer underneath sheets.
//
// It splits delimited text into records of raw string fields and joins fields
// back into delimited lines. It follows RFC 4180 and knows nothing about
// column types, headers or schemas.
//
// # Features
//
// - Streaming reader with custom field and quote separators and precise error locations.
// - Buffered writer with configurable delimiters, newline policy, and forced quoting.
// - Structured error reporting via `ParseError`, `ErrBareQuote`, `ErrUnterminatedQuote`, and `ErrFieldCount`.
// - Record width enforcement (`Reader.FieldsPerRecord`) that can be switched off for ragged input.
package swiftcsv
