package di_test

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-landing/internal/di"
	"github.com/goliatone/go-landing/internal/resolution"
	"github.com/goliatone/go-landing/internal/runtimeconfig"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

func TestContainerStorageLogging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	rec := newRecordingProvider()

	if _, err := di.NewContainer(context.Background(), cfg, di.WithLoggerProvider(rec)); err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	entry := rec.find("segments.store.configured")
	if entry == nil {
		t.Fatalf("expected segments.store.configured log entry, got %#v", rec.entries)
	}
	if got := entry.fields["provider"]; got != runtimeconfig.StorageMemory {
		t.Fatalf("expected provider field to be memory, got %v", got)
	}
	if got := entry.fields["module"]; got != "landing.segments" {
		t.Fatalf("expected module field to be landing.segments, got %v", got)
	}
}

func TestContainerLogsResolutionCause(t *testing.T) {
	rec := newRecordingProvider()
	container, err := di.NewContainer(context.Background(), runtimeconfig.DefaultConfig(), di.WithLoggerProvider(rec))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	_, err = container.ResolutionService().ResolvePage(context.Background(), resolution.Request{})
	if !resolution.IsNotFound(err) {
		t.Fatalf("expected not found for an empty store, got %v", err)
	}

	entry := rec.find("resolution.not_found")
	if entry == nil {
		t.Fatalf("expected resolution.not_found entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "landing.resolution" {
		t.Fatalf("expected resolution module, got %v", got)
	}
	if got := entry.fields["variant"]; got != "evame" {
		t.Fatalf("expected variant field evame, got %v", got)
	}
}

type recordingProvider struct {
	mu      sync.Mutex
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{entries: []recordedEntry{}}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{
		provider: p,
		fields: map[string]any{
			"logger": name,
		},
	}
}

func (p *recordingProvider) record(entry recordedEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

var _ interfaces.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := cloneFields(l.fields)
	for key, value := range fields {
		merged[key] = value
	}
	return &recordingLogger{provider: l.provider, fields: merged}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return &recordingLogger{provider: l.provider, fields: cloneFields(l.fields)}
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := cloneFields(l.fields)
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		if key == "" {
			continue
		}
		fields[key] = args[i+1]
	}
	l.provider.record(recordedEntry{level: level, msg: msg, fields: fields})
}

func cloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}
