package arkiv

import (
	"encoding/binary"

	"github.com/hupe1980/arkiv/wire"
)

type options struct {
	format     wire.Format
	maxDepth   int
	workBudget int
	logger     *Logger
	metrics    MetricsCollector
}

func defaultOptions() options {
	return options{
		format:  wire.DefaultFormat(),
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Option configures Marshal, Access and Validate.
//
// The format options change the wire format: archives written under one
// format cannot be read under another.
type Option func(*options)

// WithFormat sets the complete wire format.
func WithFormat(f wire.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithWidth sets the offset width. Narrower offsets shrink archives but bound
// the distance between a pointer and its target; exceeding it fails
// serialization hard.
func WithWidth(w wire.Width) Option {
	return func(o *options) {
		o.format.Width = w
	}
}

// WithByteOrder sets the byte order of every multi-byte field.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		o.format.Order = order
	}
}

// WithoutPadding disables alignment padding. Archives become smaller, and
// validation stops enforcing alignment, but direct reads may be misaligned;
// only use this where unaligned access is acceptable.
func WithoutPadding() Option {
	return func(o *options) {
		o.format.NoPadding = true
	}
}

// WithMaxDepth bounds nested pointer traversal during validation.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithWorkBudget bounds the total bytes a validation pass may check. The
// default is proportional to the buffer size.
func WithWorkBudget(n int) Option {
	return func(o *options) {
		o.workBudget = n
	}
}

// WithLogger configures structured logging. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}
