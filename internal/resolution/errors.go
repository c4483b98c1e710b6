package resolution

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Cause names why a resolution ended in NotFound. Causes are logged and
// counted but never distinguished to callers.
type Cause string

const (
	CauseInvalidLocale     Cause = "invalid_locale"
	CauseVariantAbsent     Cause = "variant_absent"
	CauseFetchFailed       Cause = "fetch_failed"
	CauseIncompleteHeroSet Cause = "incomplete_hero_set"
)

// TextCodeContentUnavailable is the go-errors text code for every NotFound.
const TextCodeContentUnavailable = "CONTENT_NOT_AVAILABLE"

// ErrContentUnavailable is the single externally observable failure.
var ErrContentUnavailable = errors.New("resolution: content not available")

// NotFoundError records the internal cause of a failed resolution.
type NotFoundError struct {
	Cause   Cause
	Hint    string
	Locale  string
	Variant string
	Err     error
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrContentUnavailable.Error()
	}
	parts := []string{ErrContentUnavailable.Error(), "cause=" + string(e.Cause)}
	if e.Locale != "" {
		parts = append(parts, "locale="+e.Locale)
	}
	if e.Variant != "" {
		parts = append(parts, "variant="+e.Variant)
	}
	msg := strings.Join(parts, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the unified sentinel and the underlying error.
func (e *NotFoundError) Unwrap() []error {
	if e == nil {
		return []error{ErrContentUnavailable}
	}
	if e.Err == nil {
		return []error{ErrContentUnavailable}
	}
	return []error{ErrContentUnavailable, e.Err}
}

func notFound(nf *NotFoundError) error {
	return goerrors.Wrap(nf, goerrors.CategoryNotFound, "content not available").
		WithTextCode(TextCodeContentUnavailable)
}

// IsNotFound reports whether err is a resolution NotFound outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrContentUnavailable)
}

// CauseOf returns the internal cause carried by err, or "".
func CauseOf(err error) Cause {
	var nf *NotFoundError
	if errors.As(err, &nf) && nf != nil {
		return nf.Cause
	}
	return ""
}
