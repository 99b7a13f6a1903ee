package fix_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotextlint/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edit    fix.TextEdit
		wantErr string
	}{
		{"valid replacement", fix.TextEdit{StartOffset: 0, EndOffset: 3, NewText: "x"}, ""},
		{"insertion at end", fix.TextEdit{StartOffset: 5, EndOffset: 5, NewText: "\n"}, ""},
		{"negative start", fix.TextEdit{StartOffset: -1, EndOffset: 2}, "start offset is negative"},
		{"reversed range", fix.TextEdit{StartOffset: 3, EndOffset: 2}, "end offset is before start offset"},
		{"past end", fix.TextEdit{StartOffset: 4, EndOffset: 6}, "exceeds content length 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits([]fix.TextEdit{tt.edit}, 5)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSortEdits_StableForEqualRanges(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 9, EndOffset: 9, NewText: "\n"},
		{StartOffset: 2, EndOffset: 4, NewText: "first"},
		{StartOffset: 2, EndOffset: 4, NewText: "second"},
		{StartOffset: 2, EndOffset: 3},
	}
	fix.SortEdits(edits)

	want := []fix.TextEdit{
		{StartOffset: 2, EndOffset: 3},
		{StartOffset: 2, EndOffset: 4, NewText: "first"},
		{StartOffset: 2, EndOffset: 4, NewText: "second"},
		{StartOffset: 9, EndOffset: 9, NewText: "\n"},
	}
	if diff := cmp.Diff(want, edits); diff != "" {
		t.Errorf("SortEdits mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	t.Run("sorted output", func(t *testing.T) {
		t.Parallel()

		got, err := fix.PrepareEdits([]fix.TextEdit{
			{StartOffset: 6, EndOffset: 7},
			{StartOffset: 0, EndOffset: 1, NewText: "A"},
		}, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, got[0].StartOffset)
		assert.Equal(t, 6, got[1].StartOffset)
	})

	t.Run("overlap is an error", func(t *testing.T) {
		t.Parallel()

		_, err := fix.PrepareEdits([]fix.TextEdit{
			{StartOffset: 0, EndOffset: 5, NewText: "tabs"},
			{StartOffset: 3, EndOffset: 5},
		}, 10)

		var conflict *fix.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 3, conflict.Second.StartOffset)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		got, err := fix.PrepareEdits(nil, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMergeAndFilterConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edits []fix.TextEdit
		want  fix.Plan
	}{
		{
			name: "disjoint edits all accepted",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 1},
				{StartOffset: 4, EndOffset: 4, NewText: "\n"},
			},
			want: fix.Plan{Accepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 1},
				{StartOffset: 4, EndOffset: 4, NewText: "\n"},
			}},
		},
		{
			name: "overlapping deletions merge",
			edits: []fix.TextEdit{
				{StartOffset: 2, EndOffset: 5},
				{StartOffset: 4, EndOffset: 8},
			},
			want: fix.Plan{
				Accepted: []fix.TextEdit{{StartOffset: 2, EndOffset: 8}},
				Merged:   1,
			},
		},
		{
			name: "tab replacement wins over trailing space deletion",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 4, NewText: "a    b"},
				{StartOffset: 3, EndOffset: 4},
			},
			want: fix.Plan{
				Accepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 4, NewText: "a    b"}},
				Skipped:  []fix.TextEdit{{StartOffset: 3, EndOffset: 4}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fix.MergeAndFilterConflicts(tt.edits)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("plan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanEdits_SortsBeforeResolving(t *testing.T) {
	t.Parallel()

	plan, err := fix.PlanEdits([]fix.TextEdit{
		{StartOffset: 3, EndOffset: 4},
		{StartOffset: 0, EndOffset: 4, NewText: "a    b"},
	}, 5)
	require.NoError(t, err)

	require.Len(t, plan.Accepted, 1)
	assert.Equal(t, "a    b", plan.Accepted[0].NewText)
	assert.Len(t, plan.Skipped, 1)
}
