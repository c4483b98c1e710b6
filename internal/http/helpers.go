package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-landing/internal/commands"
	"github.com/goliatone/go-landing/internal/resolution"
)

var ErrViewerSignedIn = errors.New("http: call-to-action is only available to anonymous visitors")

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.Trim(strings.TrimSpace(base), "/")
	trimmedSuffix := strings.Trim(strings.TrimSpace(suffix), "/")
	switch {
	case trimmedBase == "" && trimmedSuffix == "":
		return "/"
	case trimmedBase == "":
		return "/" + trimmedSuffix
	case trimmedSuffix == "":
		return "/" + trimmedBase
	}
	return "/" + trimmedBase + "/" + trimmedSuffix
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// mapError hides resolution causes: every NotFound renders the same body.
func mapError(err error) (int, errorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	case resolution.IsNotFound(err):
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Code:    resolution.TextCodeContentUnavailable,
			Message: "content not available",
		}
	case errors.Is(err, ErrViewerSignedIn):
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}
	case commands.IsValidation(err):
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Code:    commands.TextCodeValidation,
			Message: validationMessage(err),
		}
	case goerrors.IsCategory(err, goerrors.CategoryCommand):
		return http.StatusInternalServerError, errorResponse{Error: "command_failed", Message: "request could not be completed"}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "request could not be completed"}
}

func validationMessage(err error) string {
	var issues validation.Errors
	if errors.As(err, &issues) {
		return issues.Error()
	}
	return err.Error()
}
