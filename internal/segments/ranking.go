package segments

import (
	"cmp"
	"slices"
	"strings"
)

// rankCandidates orders candidates best first: most points, then newest, then
// id for a stable total order.
func rankCandidates(list []TranslationCandidate) {
	slices.SortStableFunc(list, func(a, b TranslationCandidate) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

// applySelection ranks the segment candidates in place and marks the top one
// as selected. Segments without candidates keep a nil selection.
func applySelection(seg *Segment) {
	seg.Selected = nil
	if len(seg.Candidates) == 0 {
		return
	}
	rankCandidates(seg.Candidates)
	top := seg.Candidates[0]
	seg.Selected = &top
}
