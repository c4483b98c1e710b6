package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

const (
	rootModule       = "landing"
	i18nModule       = "landing.i18n"
	resolutionModule = "landing.resolution"
	segmentsModule   = "landing.segments"
	markdownModule   = "landing.markdown"
	httpModule       = "landing.http"
)

const (
	fieldHint    = "hint"
	fieldLocale  = "locale"
	fieldVariant = "variant"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one that
// returns nil, yields a no-op logger. The module name is attached as the
// "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// I18NLogger returns the logger used by locale resolution and fixture loading.
func I18NLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, i18nModule)
}

// ResolutionLogger returns the logger used by the hero resolution flow.
func ResolutionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resolutionModule)
}

// SegmentsLogger returns the logger used by content fetch adapters.
func SegmentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, segmentsModule)
}

// MarkdownLogger returns the logger used by the fixture importer.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// HTTPLogger returns the logger used by the public HTTP surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithResolutionContext attaches the raw locale hint, the resolved locale and
// the selected variant. Empty values are skipped.
func WithResolutionContext(logger interfaces.Logger, hint, locale, variant string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(hint); trimmed != "" {
		fields[fieldHint] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(variant); trimmed != "" {
		fields[fieldVariant] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}
var _ interfaces.FieldsLogger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
