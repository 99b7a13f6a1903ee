package fix

import "bytes"

// ApplyEdits splices sorted, non-overlapping edits into content. Prepare
// the edits with PrepareEdits or PlanEdits first. Content is not modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += e.Delta()
	}

	var out bytes.Buffer
	out.Grow(max(size, 0))

	pos := 0
	for _, e := range edits {
		out.Write(content[pos:e.StartOffset])
		out.WriteString(e.NewText)
		pos = e.EndOffset
	}
	out.Write(content[pos:])

	return out.Bytes()
}

// Apply plans edits and applies the accepted ones in a single call.
// It returns the new content and the plan that produced it.
func Apply(content []byte, edits []TextEdit) ([]byte, Plan, error) {
	plan, err := PlanEdits(edits, len(content))
	if err != nil {
		return nil, Plan{}, err
	}
	return ApplyEdits(content, plan.Accepted), plan, nil
}
