package sheets

import (
	"io"
	"log/slog"
)

// Option configures a Reader or Writer.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes debug events (header handling, rejected rows) to logger.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
