package textcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

func TestLineIndex_LineAt(t *testing.T) {
	t.Parallel()

	idx := textcheck.NewLineIndex([]byte("ab\ncd\n\nef"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
		{42, 4, 3},
		{-1, 0, 0},
	}

	for _, tt := range tests {
		line, col := idx.LineAt(tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
	assert.Equal(t, 4, idx.LineCount())
}

func TestLineIndex_Offset(t *testing.T) {
	t.Parallel()

	idx := textcheck.NewLineIndex([]byte("ab\ncd\n"))

	offset, ok := idx.Offset(2, 1)
	assert.True(t, ok)
	assert.Equal(t, 3, offset)

	offset, ok = idx.Offset(2, 3)
	assert.True(t, ok, "column may point at the terminator")
	assert.Equal(t, 5, offset)

	_, ok = idx.Offset(2, 4)
	assert.False(t, ok)

	_, ok = idx.Offset(0, 1)
	assert.False(t, ok)

	offset, ok = idx.Offset(3, 1)
	assert.True(t, ok)
	assert.Equal(t, 6, offset)
}

func TestLineIndex_LineContent(t *testing.T) {
	t.Parallel()

	idx := textcheck.NewLineIndex([]byte("one\r\ntwo"))

	assert.Equal(t, []byte("one\r"), idx.LineContent(1))
	assert.Equal(t, []byte("two"), idx.LineContent(2))
	assert.Nil(t, idx.LineContent(3))
}

func TestLineIndex_Empty(t *testing.T) {
	t.Parallel()

	idx := textcheck.NewLineIndex(nil)

	assert.Equal(t, 1, idx.LineCount())
	line, col := idx.LineAt(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
	assert.Empty(t, idx.LineContent(1))
}

func TestLocation(t *testing.T) {
	t.Parallel()

	byOffset := textcheck.AtOffset(7)
	offset, ok := byOffset.Offset()
	assert.True(t, ok)
	assert.Equal(t, 7, offset)
	assert.False(t, byOffset.IsLine())

	byLine := textcheck.AtLine(3, 2)
	line, col, ok := byLine.LineColumn()
	assert.True(t, ok)
	assert.Equal(t, 3, line)
	assert.Equal(t, 2, col)
	_, ok = byLine.Offset()
	assert.False(t, ok)
}
