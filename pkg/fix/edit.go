// Package fix turns findings into byte edits and applies them.
package fix

import "fmt"

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
// An empty range is an insertion; an empty NewText is a deletion.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Len returns the number of bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsInsertion reports whether the edit only adds text.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset && e.NewText != ""
}

// IsDeletion reports whether the edit only removes text.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// Delta returns the change in content length after applying the edit.
func (e TextEdit) Delta() int {
	return len(e.NewText) - e.Len()
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]->%q", e.StartOffset, e.EndOffset, e.NewText)
}

// EditBuilder collects edits for one file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder returns an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// Replace adds an edit replacing [start, end) with text.
func (b *EditBuilder) Replace(start, end int, text string) *EditBuilder {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: text})
	return b
}

// Insert adds text at offset.
func (b *EditBuilder) Insert(offset int, text string) *EditBuilder {
	return b.Replace(offset, offset, text)
}

// Delete removes [start, end).
func (b *EditBuilder) Delete(start, end int) *EditBuilder {
	return b.Replace(start, end, "")
}

// Build returns the collected edits.
func (b *EditBuilder) Build() []TextEdit {
	return b.Edits
}
