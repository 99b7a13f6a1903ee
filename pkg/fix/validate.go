package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit   TextEdit
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Reason)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// ValidateEdits checks every edit range against a content length.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, e := range edits {
		switch {
		case e.StartOffset < 0:
			return &ValidationError{Edit: e, Reason: "start offset is negative"}
		case e.EndOffset < e.StartOffset:
			return &ValidationError{Edit: e, Reason: "end offset is before start offset"}
		case e.EndOffset > contentLen:
			return &ValidationError{
				Edit:   e,
				Reason: fmt.Sprintf("end offset %d exceeds content length %d", e.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset. The sort is
// stable so equal ranges keep the order their findings were raised in.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// overlaps reports whether next, sorted after prev, starts inside prev.
func overlaps(prev, next TextEdit) bool {
	return next.StartOffset < prev.EndOffset
}

// DetectConflicts returns the first overlap in sorted edits.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if overlaps(edits[i-1], edits[i]) {
			return &ConflictError{First: edits[i-1], Second: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates and sorts edits, failing on any overlap.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// Plan is the set of edits chosen for one fix pass.
type Plan struct {
	// Accepted edits are sorted and non-overlapping.
	Accepted []TextEdit

	// Skipped edits overlapped an accepted edit. A later pass may pick
	// them up once the accepted edits are applied.
	Skipped []TextEdit

	// Merged counts deletions folded into an overlapping deletion.
	Merged int
}

// MergeAndFilterConflicts resolves overlaps in sorted edits. Overlapping
// deletions merge into one deletion over their union; any other edit that
// overlaps the one before it is skipped, so earlier edits win.
func MergeAndFilterConflicts(edits []TextEdit) Plan {
	var plan Plan
	if len(edits) == 0 {
		return plan
	}

	current := edits[0]
	for _, next := range edits[1:] {
		switch {
		case !overlaps(current, next):
			plan.Accepted = append(plan.Accepted, current)
			current = next
		case current.NewText == "" && next.NewText == "":
			current.EndOffset = max(current.EndOffset, next.EndOffset)
			plan.Merged++
		default:
			plan.Skipped = append(plan.Skipped, next)
		}
	}
	plan.Accepted = append(plan.Accepted, current)

	return plan
}

// PlanEdits validates, sorts and resolves overlaps. It only fails when an
// edit does not fit the content.
func PlanEdits(edits []TextEdit, contentLen int) (Plan, error) {
	if len(edits) == 0 {
		return Plan{}, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return Plan{}, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	return MergeAndFilterConflicts(sorted), nil
}
