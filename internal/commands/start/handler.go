package startcmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-landing/internal/commands"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

const startOperation = "start.submit"

var _ command.Commander[StartCommand] = (*Handler)(nil)

// Handler acknowledges call-to-action submissions.
type Handler struct {
	inner *commands.Handler[StartCommand, StartResult]
}

// NewHandler builds the start handler on the shared command foundation.
func NewHandler(logger interfaces.Logger, opts ...commands.HandlerOption[StartCommand, StartResult]) *Handler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg StartCommand) (StartResult, error) {
		if err := ctx.Err(); err != nil {
			return StartResult{}, err
		}
		value := strings.TrimSpace(msg.InputName)
		logging.WithFields(logger, map[string]any{
			"input_length": len([]rune(value)),
		}).Debug("start.submit.accepted")
		return StartResult{Success: true, Value: value}, nil
	}

	handlerOpts := []commands.HandlerOption[StartCommand, StartResult]{
		commands.WithLogger[StartCommand, StartResult](logger),
		commands.WithOperation[StartCommand, StartResult](startOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &Handler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander[StartCommand].
func (h *Handler) Execute(ctx context.Context, msg StartCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Submit validates and acknowledges msg.
func (h *Handler) Submit(ctx context.Context, msg StartCommand) (StartResult, error) {
	return h.inner.Run(ctx, msg)
}
