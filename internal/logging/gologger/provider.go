package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Config mirrors the [logging] section of the runtime config.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeJSON,
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

// Provider hands out landing module loggers backed by go-logger.
type Provider struct {
	root *glog.BaseLogger
}

func NewProvider(cfg Config) (*Provider, error) {
	opts, err := buildOptions(cfg)
	if err != nil {
		return nil, err
	}
	root := glog.NewLogger(opts...)

	var focus []string
	for _, name := range cfg.Focus {
		if name = strings.TrimSpace(name); name != "" {
			focus = append(focus, name)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

func buildOptions(cfg Config) ([]glog.Option, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	opts := []glog.Option{format()}

	if raw := strings.ToLower(strings.TrimSpace(cfg.Level)); raw != "" {
		level, ok := levels[raw]
		if !ok {
			return nil, fmt.Errorf("logging: unknown level %q", cfg.Level)
		}
		opts = append(opts, glog.WithLevel(level))
	}
	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}
	return opts, nil
}

// GetLogger returns the module logger for name, or the root logger when name
// is blank. A nil provider yields the no-op logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

type moduleLogger struct {
	glog.Logger
}

var _ interfaces.FieldsLogger = moduleLogger{}

func adapt(l glog.Logger) interfaces.Logger {
	if l == nil {
		return logging.NoOp()
	}
	return moduleLogger{Logger: l}
}

func (m moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return m
	}
	return adapt(m.Logger.WithContext(ctx))
}

// WithFields copies fields so later caller writes do not leak into the child.
func (m moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return m
	}
	switch inner := m.Logger.(type) {
	case glog.FieldsLogger:
		return adapt(inner.WithFields(maps.Clone(fields)))
	case *glog.BaseLogger:
		return adapt(inner.With(pairs(fields)...))
	default:
		return m
	}
}

func pairs(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, key, fields[key])
	}
	return out
}
