package segments

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVariantRequired  = errors.New("segments: variant key is required")
	ErrLocaleRequired   = errors.New("segments: locale is required")
	ErrOrdinalInvalid   = errors.New("segments: ordinal must be zero or positive")
	ErrDuplicateOrdinal = errors.New("segments: duplicate ordinal within variant")
)

// DuplicateOrdinalError reports two segments sharing an ordinal in one variant.
type DuplicateOrdinalError struct {
	Variant string
	Ordinal int
}

func (e *DuplicateOrdinalError) Error() string {
	if e == nil {
		return ErrDuplicateOrdinal.Error()
	}
	variant := strings.TrimSpace(e.Variant)
	if variant == "" {
		return fmt.Sprintf("%s: ordinal=%d", ErrDuplicateOrdinal.Error(), e.Ordinal)
	}
	return fmt.Sprintf("%s: variant=%s ordinal=%d", ErrDuplicateOrdinal.Error(), variant, e.Ordinal)
}

func (e *DuplicateOrdinalError) Unwrap() error {
	return ErrDuplicateOrdinal
}

// ValidatePage checks the invariants a fetcher must uphold for a snapshot:
// non-negative ordinals, unique within the variant.
func ValidatePage(page *Page) error {
	if page == nil {
		return nil
	}
	seen := make(map[int]struct{}, len(page.Segments))
	for _, seg := range page.Segments {
		if seg.Ordinal < 0 {
			return fmt.Errorf("%w: %d", ErrOrdinalInvalid, seg.Ordinal)
		}
		if _, ok := seen[seg.Ordinal]; ok {
			return &DuplicateOrdinalError{Variant: page.VariantKey, Ordinal: seg.Ordinal}
		}
		seen[seg.Ordinal] = struct{}{}
	}
	return nil
}
