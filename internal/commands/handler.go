package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// DefaultTimeout bounds a command execution when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// ResultFunc executes a command message and produces a result.
type ResultFunc[T command.Message, R any] func(ctx context.Context, msg T) (R, error)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message, R any] func(*Handler[T, R])

// Handler wraps command execution with validation, timeout enforcement,
// telemetry and error categorisation. It satisfies command.Commander[T].
type Handler[T command.Message, R any] struct {
	exec      ResultFunc[T, R]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	telemetry Telemetry[T]
}

// NewHandler creates a handler around fn.
func NewHandler[T command.Message, R any](fn ResultFunc[T, R], opts ...HandlerOption[T, R]) *Handler[T, R] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T, R]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.telemetry == nil {
		h.telemetry = DefaultTelemetry[T](h.logger)
	}
	return h
}

// FromCommand adapts a result-less go-command function.
func FromCommand[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T, struct{}]) *Handler[T, struct{}] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	return NewHandler(func(ctx context.Context, msg T) (struct{}, error) {
		return struct{}{}, fn(ctx, msg)
	}, opts...)
}

// Execute conforms to command.Commander[T].
func (h *Handler[T, R]) Execute(ctx context.Context, msg T) error {
	_, err := h.Run(ctx, msg)
	return err
}

// Run validates msg, executes it under the handler timeout and returns the
// result. Errors are categorised with go-errors.
func (h *Handler[T, R]) Run(ctx context.Context, msg T) (R, error) {
	var zero R
	if err := command.ValidateMessage(msg); err != nil {
		return zero, wrapValidationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return zero, wrapContextError(err)
	}

	fields := map[string]any{
		"command": command.GetMessageType(msg),
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	logging.WithFields(h.logger, fields).Debug("command.execute.start")

	started := time.Now()
	info := TelemetryInfo{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
		Fields:    fields,
	}

	result, err := h.exec(ctx, msg)
	info.Duration = time.Since(started)
	if err != nil {
		info.Error = err
		info.Status = TelemetryStatusFailed
		h.telemetry(ctx, msg, info)
		return zero, wrapExecuteError(err)
	}
	if err := ctx.Err(); err != nil {
		info.Error = err
		info.Status = TelemetryStatusContextError
		h.telemetry(ctx, msg, info)
		return zero, wrapContextError(err)
	}

	info.Status = TelemetryStatusSuccess
	h.telemetry(ctx, msg, info)
	return result, nil
}

// WithTimeout overrides the default execution timeout. Zero or negative
// disables it.
func WithTimeout[T command.Message, R any](timeout time.Duration) HandlerOption[T, R] {
	return func(h *Handler[T, R]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message, R any](logger interfaces.Logger) HandlerOption[T, R] {
	return func(h *Handler[T, R]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets the operation name attached to every log entry.
func WithOperation[T command.Message, R any](operation string) HandlerOption[T, R] {
	return func(h *Handler[T, R]) {
		h.operation = operation
	}
}

// WithTelemetry replaces the outcome callback. The default logs outcomes.
func WithTelemetry[T command.Message, R any](telemetry Telemetry[T]) HandlerOption[T, R] {
	return func(h *Handler[T, R]) {
		h.telemetry = telemetry
	}
}

func (h *Handler[T, R]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}
