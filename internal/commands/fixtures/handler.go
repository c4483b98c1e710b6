package fixturescmd

import (
	"context"
	"io/fs"
	"os"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-landing/internal/commands"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/markdown"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

const importOperation = "fixtures.import_directory"

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// Importer is the part of markdown.Importer the handler needs.
type Importer interface {
	ImportDir(ctx context.Context, fsys fs.FS, dir string) (markdown.ImportResult, error)
}

// ImportDirectoryHandler runs fixture imports through the command foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand, markdown.ImportResult]
}

// NewImportDirectoryHandler binds the handler to importer. open maps a
// directory to a filesystem and defaults to os.DirFS.
func NewImportDirectoryHandler(importer Importer, logger interfaces.Logger, open func(dir string) fs.FS, opts ...commands.HandlerOption[ImportDirectoryCommand, markdown.ImportResult]) *ImportDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	if open == nil {
		open = os.DirFS
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) (markdown.ImportResult, error) {
		result, err := importer.ImportDir(ctx, open(strings.TrimSpace(msg.Directory)), ".")
		if err != nil {
			return result, err
		}
		logging.WithFields(logger, map[string]any{
			"variants": len(result.Variants),
			"segments": result.Segments,
		}).Info("fixtures.command.import_directory.completed")
		return result, nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand, markdown.ImportResult]{
		commands.WithLogger[ImportDirectoryCommand, markdown.ImportResult](logger),
		commands.WithOperation[ImportDirectoryCommand, markdown.ImportResult](importOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Import runs the import and returns its summary.
func (h *ImportDirectoryHandler) Import(ctx context.Context, msg ImportDirectoryCommand) (markdown.ImportResult, error) {
	return h.inner.Run(ctx, msg)
}
