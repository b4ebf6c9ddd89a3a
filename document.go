package sheets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// schemaDocument is the file form of a record shape declaration.
type schemaDocument struct {
	Name    string           `yaml:"name" json:"name"`
	Dialect map[string]any   `yaml:"dialect" json:"dialect"`
	Columns []columnDocument `yaml:"columns" json:"columns"`
}

type columnDocument struct {
	Name     string  `yaml:"name" json:"name"`
	Type     string  `yaml:"type" json:"type"`
	Title    *string `yaml:"title" json:"title"`
	Required bool    `yaml:"required" json:"required"`
	Format   string  `yaml:"format" json:"format"`
}

// LoadSchema reads a schema document from path. Files ending in .yaml or
// .yml are parsed as YAML; .json, .jsonc and .hujson as JSON with comments.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var s *Schema
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		s, err = ParseSchemaYAML(data)
	case ".json", ".jsonc", ".hujson":
		s, err = ParseSchemaJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidSchema, path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSchemaYAML builds a Schema from a YAML document:
//
//	name: Example
//	dialect:
//	  has_header_row: true
//	columns:
//	  - {name: name, type: string}
//	  - {name: birthday, type: date, format: "%d.%m.%Y"}
//	  - {name: age, type: integer, required: true}
//
// Columns keep their document order.
func ParseSchemaYAML(data []byte) (*Schema, error) {
	var doc schemaDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return doc.build()
}

// ParseSchemaJSON builds a Schema from the JSON form of the document
// accepted by ParseSchemaYAML. Comments and trailing commas are allowed.
func ParseSchemaJSON(data []byte) (*Schema, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONC: %w", ErrInvalidSchema, err)
	}

	var doc schemaDocument
	if err := json.Unmarshal(standardized, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return doc.build()
}

func (doc schemaDocument) build() (*Schema, error) {
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("%w: no columns declared", ErrInvalidSchema)
	}

	cfg, err := DecodeConfig(doc.Dialect)
	if err != nil {
		return nil, err
	}

	fields := make([]FieldDef, 0, len(doc.Columns))
	for _, cd := range doc.Columns {
		col, err := cd.column()
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field(cd.Name, col))
	}
	return Define(doc.Name, cfg, fields...)
}

func (cd columnDocument) column() (Column, error) {
	var opts []ColumnOption
	if cd.Title != nil {
		opts = append(opts, WithTitle(*cd.Title))
	}
	if cd.Required {
		opts = append(opts, Required())
	}

	kind, ok := ParseKind(cd.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q for column %q", ErrUnknownColumnType, cd.Type, cd.Name)
	}
	if cd.Format != "" && kind != KindDate {
		return nil, fmt.Errorf("%w: format is only valid for date columns, column %q is %s", ErrInvalidSchema, cd.Name, kind)
	}

	switch kind {
	case KindInteger:
		return Integer(opts...), nil
	case KindFloat:
		return Float(opts...), nil
	case KindDecimal:
		return Decimal(opts...), nil
	case KindDate:
		return Date(cd.Format, opts...), nil
	default:
		return String(opts...), nil
	}
}

// ParseKind maps a type name used in schema documents to its Kind. An empty
// name means string.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "string", "str":
		return KindString, true
	case "integer", "int":
		return KindInteger, true
	case "float":
		return KindFloat, true
	case "decimal":
		return KindDecimal, true
	case "date":
		return KindDate, true
	}
	return 0, false
}
