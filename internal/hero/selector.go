package hero

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/goliatone/go-landing/segments"
)

// Canonical hero positions.
const (
	TitleOrdinal = 0
	BodyOrdinal  = 1
)

// ErrIncomplete reports that a required hero ordinal is missing.
var ErrIncomplete = errors.New("hero: incomplete hero set")

// IncompleteError lists the missing ordinals.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	if e == nil || len(e.Missing) == 0 {
		return ErrIncomplete.Error()
	}
	return fmt.Sprintf("%s: missing ordinals %v", ErrIncomplete.Error(), e.Missing)
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}

// Select extracts the title and body segments from a single pass over seq.
// Ordinals are the only ordering key; the position of a segment in seq is
// ignored, as are segments with any ordinal other than 0 or 1. A repeated hero
// ordinal fails with *segments.DuplicateOrdinalError.
func Select(seq iter.Seq[segments.Segment]) (segments.HeroSet, error) {
	var slots [2]*segments.Segment
	if seq != nil {
		for seg := range seq {
			if seg.Ordinal != TitleOrdinal && seg.Ordinal != BodyOrdinal {
				continue
			}
			if slots[seg.Ordinal] != nil {
				return segments.HeroSet{}, &segments.DuplicateOrdinalError{
					Variant: seg.VariantKey,
					Ordinal: seg.Ordinal,
				}
			}
			captured := seg
			slots[seg.Ordinal] = &captured
		}
	}

	var missing []int
	for ordinal, slot := range slots {
		if slot == nil {
			missing = append(missing, ordinal)
		}
	}
	if len(missing) > 0 {
		return segments.HeroSet{}, &IncompleteError{Missing: missing}
	}

	return segments.HeroSet{
		Title: *slots[TitleOrdinal],
		Body:  *slots[BodyOrdinal],
	}, nil
}

// SelectSlice is Select over a slice.
func SelectSlice(list []segments.Segment) (segments.HeroSet, error) {
	return Select(slices.Values(list))
}
