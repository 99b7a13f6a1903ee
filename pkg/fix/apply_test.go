package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotextlint/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "unchanged\n",
			want:    "unchanged\n",
		},
		{
			name:    "expand tab line",
			content: "a\tb\n",
			edits:   []fix.TextEdit{{StartOffset: 0, EndOffset: 3, NewText: "a    b"}},
			want:    "a    b\n",
		},
		{
			name:    "insert final newline",
			content: "no newline",
			edits:   []fix.TextEdit{{StartOffset: 10, EndOffset: 10, NewText: "\n"}},
			want:    "no newline\n",
		},
		{
			name:    "delete trailing spaces on two lines",
			content: "one  \ntwo \n",
			edits: []fix.TextEdit{
				{StartOffset: 3, EndOffset: 5},
				{StartOffset: 9, EndOffset: 10},
			},
			want: "one\ntwo\n",
		},
		{
			name:    "deletion followed by insertion at end",
			content: "end  ",
			edits: []fix.TextEdit{
				{StartOffset: 3, EndOffset: 5},
				{StartOffset: 5, EndOffset: 5, NewText: "\n"},
			},
			want: "end\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fix.ApplyEdits([]byte(tt.content), tt.edits)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyEdits_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	content := []byte("keep  \n")
	_ = fix.ApplyEdits(content, []fix.TextEdit{{StartOffset: 4, EndOffset: 6}})

	assert.Equal(t, "keep  \n", string(content))
}

func TestApply(t *testing.T) {
	t.Parallel()

	content := []byte("x\t \n")
	edits := fix.NewEditBuilder().
		Delete(2, 3).
		Replace(0, 3, "x").
		Build()

	got, plan, err := fix.Apply(content, edits)
	require.NoError(t, err)

	assert.Equal(t, "x\n", string(got))
	assert.Len(t, plan.Accepted, 1)
	assert.Len(t, plan.Skipped, 1)
}

func TestApply_InvalidEdit(t *testing.T) {
	t.Parallel()

	_, _, err := fix.Apply([]byte("abc"), []fix.TextEdit{{StartOffset: 2, EndOffset: 9}})

	var verr *fix.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "exceeds content length 3")
}

func TestTextEdit(t *testing.T) {
	t.Parallel()

	insert := fix.TextEdit{StartOffset: 4, EndOffset: 4, NewText: "\n"}
	assert.True(t, insert.IsInsertion())
	assert.False(t, insert.IsDeletion())
	assert.Equal(t, 1, insert.Delta())

	del := fix.TextEdit{StartOffset: 1, EndOffset: 4}
	assert.True(t, del.IsDeletion())
	assert.Equal(t, 3, del.Len())
	assert.Equal(t, -3, del.Delta())
	assert.Equal(t, `[1:4]->""`, del.String())
}
