package textcheck

import "sort"

// LineIndex maps byte offsets to 1-based line and column numbers.
// Lines are split on "\n" only, so a "\r" stays part of its line.
// Columns count bytes, not runes.
type LineIndex struct {
	contents []byte
	starts   []int
}

// NewLineIndex builds an index over contents. An empty buffer has one
// empty line.
func NewLineIndex(contents []byte) *LineIndex {
	starts := []int{0}
	for i, b := range contents {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{contents: contents, starts: starts}
}

// LineCount returns the number of lines, counting a final line without a
// terminator (or the empty line after a final "\n").
func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Offsets at or past the end resolve to the last line.
// Returns (0, 0) for negative offsets.
func (x *LineIndex) LineAt(offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(x.contents) {
		offset = len(x.contents)
	}

	idx := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1

	return idx + 1, offset - x.starts[idx] + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// The column may point one past the last byte of the line.
func (x *LineIndex) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(x.starts) || col < 1 {
		return 0, false
	}

	offset := x.starts[line-1] + col - 1
	if offset > x.lineEnd(line) {
		return 0, false
	}
	return offset, true
}

// LineContent returns a 1-based line without its "\n".
// Returns nil if the line is out of range.
func (x *LineIndex) LineContent(line int) []byte {
	if line < 1 || line > len(x.starts) {
		return nil
	}
	return x.contents[x.starts[line-1]:x.lineEnd(line)]
}

// lineEnd returns the offset of the terminator of a 1-based line, or the
// buffer length for the last line.
func (x *LineIndex) lineEnd(line int) int {
	if line < len(x.starts) {
		return x.starts[line] - 1
	}
	return len(x.contents)
}
