package sheets

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Line terminators accepted by Config.LineTerminator.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// Config carries the format-level switches of a dialect: header handling
// and tokenizer settings. The zero value describes plain comma separated
// text without a header row.
type Config struct {
	HasHeaderRow   bool   `mapstructure:"has_header_row"`
	Delimiter      byte   `mapstructure:"delimiter"`
	Quote          byte   `mapstructure:"quote_char"`
	LineTerminator string `mapstructure:"line_terminator"`
	AlwaysQuote    bool   `mapstructure:"always_quote"`
}

// DecodeConfig builds a Config from a nested configuration block such as
// the dialect section of a schema document. Keys beginning with "__" are
// reserved and skipped; any other unknown key is an error. Single
// character strings decode into Delimiter and Quote.
func DecodeConfig(block map[string]any) (Config, error) {
	items := make(map[string]any, len(block))
	for k, v := range block {
		if strings.HasPrefix(k, "__") {
			continue
		}
		items[k] = v
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
		DecodeHook:  byteFromStringHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(items); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg.normalize()
}

// normalize fills defaults and rejects settings the tokenizer cannot honour.
func (c Config) normalize() (Config, error) {
	if c.Delimiter == 0 {
		c.Delimiter = ','
	}
	if c.Quote == 0 {
		c.Quote = '"'
	}
	if c.LineTerminator == "" {
		c.LineTerminator = LF
	}

	switch {
	case c.Delimiter == c.Quote:
		return Config{}, fmt.Errorf("%w: delimiter and quote_char are both %q", ErrInvalidConfig, c.Delimiter)
	case isLineBreak(c.Delimiter) || isLineBreak(c.Quote):
		return Config{}, fmt.Errorf("%w: delimiter and quote_char cannot be line breaks", ErrInvalidConfig)
	case c.LineTerminator != LF && c.LineTerminator != CRLF:
		return Config{}, fmt.Errorf("%w: line_terminator %q", ErrInvalidConfig, c.LineTerminator)
	}
	return c, nil
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r'
}

func byteFromStringHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Uint8 {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		if len(s) != 1 {
			return nil, fmt.Errorf("want a single byte character, got %q", s)
		}
		return s[0], nil
	}
}
