package proxy

import (
	"github.com/sirupsen/logrus"

	"kinview/internal/metrics"
)

type options struct {
	name      string
	logger    *logrus.Logger
	metrics   *metrics.Metrics
	cacheSize int
	language  string
}

type Option func(*options)

// WithName labels the proxy in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCacheSize bounds the per-proxy object cache to n entries. Zero or
// less keeps every transformed object for the life of the proxy.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithLanguage selects the language of placeholder text.
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

func buildOptions(defaultName string, opts []Option) options {
	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
	}
	return o
}
