package landing

import (
	"context"
	"net/http"

	"github.com/goliatone/go-landing/internal/commands"
	fixturescmd "github.com/goliatone/go-landing/internal/commands/fixtures"
	startcmd "github.com/goliatone/go-landing/internal/commands/start"
	"github.com/goliatone/go-landing/internal/di"
	"github.com/goliatone/go-landing/internal/markdown"
	"github.com/goliatone/go-landing/internal/resolution"
)

// Request carries the raw locale hint and the optional signed-in viewer.
type Request = resolution.Request

// Result is the presentation tuple of a resolved hero.
type Result = resolution.Result

// StartCommand is the call-to-action submission.
type StartCommand = startcmd.StartCommand

// StartResult acknowledges a call-to-action submission.
type StartResult = startcmd.StartResult

// ImportResult reports what a fixture import stored.
type ImportResult = markdown.ImportResult

// Option customises the container behind a Module.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithBunDB          = di.WithBunDB
	WithCache          = di.WithCache
	WithFetcher        = di.WithFetcher
	WithViewerProvider = di.WithViewerProvider
	WithRegistry       = di.WithRegistry
)

// Module is the top level landing runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a landing module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	return NewWithContext(context.Background(), cfg, opts...)
}

// NewWithContext is New with a context bounding storage bootstrap and fixture
// import.
func NewWithContext(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// ResolvePage resolves the hero content for one request. Every failure is a
// NotFound; use IsNotFound to test for it.
func (m *Module) ResolvePage(ctx context.Context, req Request) (Result, error) {
	return m.container.ResolutionService().ResolvePage(ctx, req)
}

// Start validates and acknowledges a call-to-action submission.
func (m *Module) Start(ctx context.Context, cmd StartCommand) (StartResult, error) {
	return m.container.StartHandler().Submit(ctx, cmd)
}

// ImportFixtures loads a directory of markdown fixtures into the store.
func (m *Module) ImportFixtures(ctx context.Context, dir string) (ImportResult, error) {
	return m.container.ImportHandler().Import(ctx, fixturescmd.ImportDirectoryCommand{Directory: dir})
}

// Handler returns the public HTTP surface mounted at Config.HTTP.BasePath.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.container.PublicAPI().Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// IsNotFound reports whether err is the unified content-not-available outcome.
func IsNotFound(err error) bool {
	return resolution.IsNotFound(err)
}

// IsValidation reports whether err came from command validation.
func IsValidation(err error) bool {
	return commands.IsValidation(err)
}
