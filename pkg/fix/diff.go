package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// noNewlineMarker follows a diff line that has no terminator.
const noNewlineMarker = "\\ No newline at end of file"

// DiffLineKind tells whether a diff line is kept, added or removed.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// prefix returns the unified diff prefix for the kind.
func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is one line of a hunk. Content keeps its "\n" terminator when
// the line had one, so a change to the final newline is visible.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is one "@@" section of a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff compares original and modified content. It returns nil when
// they are byte-identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	ops := diffLines(splitKeepEnds(original), splitKeepEnds(modified))
	diff := &Diff{Path: path, Hunks: groupHunks(ops)}

	for _, op := range ops {
		switch op.Kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	return diff
}

// HasChanges reports whether the diff has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	p := strings.TrimPrefix(d.Path, "/")
	return "diff --git a/" + p + " b/" + p
}

// String renders the diff with ---/+++ headers but without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	p := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	sb.WriteString("--- a/" + p + "\n")
	sb.WriteString("+++ b/" + p + "\n")

	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n",
			hunkRange(h.OriginalStart, h.OriginalCount),
			hunkRange(h.ModifiedStart, h.ModifiedCount))

		for _, l := range h.Lines {
			sb.WriteByte(l.Kind.prefix())
			sb.WriteString(l.Content)
			if !strings.HasSuffix(l.Content, "\n") {
				sb.WriteString("\n" + noNewlineMarker + "\n")
			}
		}
	}
	return sb.String()
}

// FullString renders the git header followed by the diff.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

func hunkRange(start, count int) string {
	if count == 1 {
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// splitKeepEnds splits content after each "\n".
func splitKeepEnds(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffLines returns the edit script turning a into b. Common leading and
// trailing lines are stripped before the LCS table is built, which keeps
// the table small for the few-line changes fixes produce.
func diffLines(a, b []string) []DiffLine {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	ops := make([]DiffLine, 0, len(a)+len(b))
	for _, l := range a[:prefix] {
		ops = append(ops, DiffLine{Kind: DiffLineContext, Content: l})
	}
	ops = append(ops, lcsScript(a[prefix:len(a)-suffix], b[prefix:len(b)-suffix])...)
	for _, l := range a[len(a)-suffix:] {
		ops = append(ops, DiffLine{Kind: DiffLineContext, Content: l})
	}
	return ops
}

// lcsScript builds an edit script from a longest-common-subsequence table.
// Removals are emitted before additions within a changed block.
func lcsScript(a, b []string) []DiffLine {
	n, m := len(a), len(b)

	// table[i][j] is the LCS length of a[i:] and b[j:].
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	var ops []DiffLine
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, DiffLine{Kind: DiffLineContext, Content: a[i]})
			i++
			j++
		case i < n && (j == m || table[i+1][j] >= table[i][j+1]):
			ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: a[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: b[j]})
			j++
		}
	}
	return ops
}

// groupHunks cuts the edit script into hunks with contextLines of context.
// Changes separated by at most twice that many unchanged lines share a hunk.
func groupHunks(ops []DiffLine) []DiffHunk {
	var hunks []DiffHunk

	for i := 0; i < len(ops); {
		if ops[i].Kind == DiffLineContext {
			i++
			continue
		}

		// Find the end of the run of changes that belong together.
		end := i
		for k := i; k < len(ops); k++ {
			if ops[k].Kind == DiffLineContext {
				continue
			}
			if k-end > 2*contextLines {
				break
			}
			end = k + 1
		}

		start := max(i-contextLines, 0)
		stop := min(end+contextLines, len(ops))
		hunks = append(hunks, buildHunk(ops, start, stop))
		i = stop
	}
	return hunks
}

func buildHunk(ops []DiffLine, start, stop int) DiffHunk {
	h := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != DiffLineAdd {
			h.OriginalStart++
		}
		if op.Kind != DiffLineRemove {
			h.ModifiedStart++
		}
	}

	h.Lines = append(h.Lines, ops[start:stop]...)
	for _, op := range h.Lines {
		if op.Kind != DiffLineAdd {
			h.OriginalCount++
		}
		if op.Kind != DiffLineRemove {
			h.ModifiedCount++
		}
	}

	// An empty side points at the line before the hunk.
	if h.OriginalCount == 0 {
		h.OriginalStart--
	}
	if h.ModifiedCount == 0 {
		h.ModifiedStart--
	}
	return h
}
