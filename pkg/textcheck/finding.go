package textcheck

// Location is either a byte offset or a 1-based (line, column) pair.
// Checks use whichever is natural; LineIndex converts between them.
type Location struct {
	offset int
	line   int
	column int
	byLine bool
}

// AtOffset returns a location at a byte offset.
func AtOffset(offset int) Location {
	return Location{offset: offset}
}

// AtLine returns a location at a 1-based line and column.
func AtLine(line, column int) Location {
	return Location{line: line, column: column, byLine: true}
}

// IsLine reports whether the location was given as a (line, column) pair.
func (l Location) IsLine() bool { return l.byLine }

// Offset returns the byte offset of an offset location and false for a
// line location.
func (l Location) Offset() (int, bool) {
	if l.byLine {
		return 0, false
	}
	return l.offset, true
}

// LineColumn returns the pair of a line location and false for an offset
// location.
func (l Location) LineColumn() (int, int, bool) {
	if !l.byLine {
		return 0, 0, false
	}
	return l.line, l.column, true
}

// Finding is one reported violation.
type Finding struct {
	Kind     Kind
	Severity Severity
	Location Location
	Message  string

	// Original is the exact violating text. When non-empty it equals the
	// bytes of the buffer starting at the location.
	Original string

	// Replacement is spliced in place of Original by an automatic fix.
	// Nil means no safe fix exists.
	Replacement *string
}

// HasFix reports whether the finding carries a replacement.
func (f Finding) HasFix() bool {
	return f.Replacement != nil
}

// Resolve returns the byte offset and 1-based line and column of the
// finding within the buffer the index was built from.
func (f Finding) Resolve(idx *LineIndex) (int, int, int) {
	if line, col, ok := f.Location.LineColumn(); ok {
		offset, _ := idx.Offset(line, col)
		return offset, line, col
	}

	offset, _ := f.Location.Offset()
	line, col := idx.LineAt(offset)
	return offset, line, col
}

// Span returns the byte range [start, end) covered by Original.
func (f Finding) Span(idx *LineIndex) (int, int) {
	start, _, _ := f.Resolve(idx)
	return start, start + len(f.Original)
}

func strPtr(s string) *string {
	return &s
}
