package textcheck

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

// noCommitMarker is kept split so this file never carries the marker.
const noCommitMarker = "@no" + "commit"

// Messages reported by the checks.
const (
	msgDosNewline = `You must use ONLY Unix linebreaks ("\n") in source code.`
	msgTabLiteral = "This line contains tab literal. " +
		"Consider setting up your editor to use spaces for indentation"
	msgEofNewline         = "Files must end in a newline."
	msgTrailingWhitespace = "This line contains trailing whitespace. Consider setting up your " +
		"editor to automatically remove trailing whitespace, you will save time."
	msgNoCommit = `This file is explicitly marked as "` + noCommitMarker + `", which blocks commits.`
)

// trailingSpaces matches each run of spaces before a line end. RE2 runs in
// linear time.
var trailingSpaces = regexp.MustCompile(`(?m) +$`)

type line struct {
	start int
	text  []byte
}

// splitLines splits on "\n". A buffer ending in "\n" yields a final empty line.
func splitLines(contents []byte) []line {
	parts := bytes.Split(contents, []byte{'\n'})
	lines := make([]line, len(parts))

	offset := 0
	for i, part := range parts {
		lines[i] = line{start: offset, text: part}
		offset += len(part) + 1
	}
	return lines
}

type checkRun struct {
	checker  *Checker
	contents []byte
	lines    []line
	findings []Finding
}

func (r *checkRun) raise(kind Kind, loc Location, msg, original string, replacement *string) {
	r.findings = append(r.findings, Finding{
		Kind:        kind,
		Severity:    r.checker.SeverityOf(kind),
		Location:    loc,
		Message:     msg,
		Original:    original,
		Replacement: replacement,
	})
}

// checkDosNewline reports the first "\r" and returns whether it fired.
func (r *checkRun) checkDosNewline() bool {
	idx := bytes.IndexByte(r.contents, '\r')
	if idx < 0 {
		return false
	}
	r.raise(DosNewline, AtOffset(idx), msgDosNewline, "\r", nil)
	return true
}

func (r *checkRun) checkTabLiteral() {
	for i, ln := range r.lines {
		if bytes.IndexByte(ln.text, '\t') < 0 {
			continue
		}
		original := string(ln.text)
		r.raise(TabLiteral, AtLine(i+1, 1), msgTabLiteral, original, strPtr(ExpandTabs(original)))
	}
}

// ExpandTabs replaces each tab with four spaces and strips the run of
// spaces this leaves at the end of the line.
func ExpandTabs(s string) string {
	expanded := strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	return strings.TrimRight(expanded, " ")
}

func (r *checkRun) checkLineLength() {
	limit := r.checker.maxLineLength
	printer := message.NewPrinter(language.English)

	for i, ln := range r.lines {
		if len(ln.text) <= limit {
			continue
		}
		// Only the measured length is grouped.
		msg := printer.Sprintf("This line is %d characters long, but the convention is ",
			len(ln.text)) + strconv.Itoa(limit) + " characters."
		r.raise(LineTooLong, AtLine(i+1, 1), msg, string(ln.text), nil)
	}
}

func (r *checkRun) checkEofNewline() {
	if r.contents[len(r.contents)-1] == '\n' {
		return
	}
	r.raise(MissingEofNewline, AtOffset(len(r.contents)), msgEofNewline, "", strPtr("\n"))
}

func (r *checkRun) checkTrailingWhitespace() {
	for _, m := range trailingSpaces.FindAllIndex(r.contents, -1) {
		r.raise(TrailingWhitespace, AtOffset(m[0]), msgTrailingWhitespace,
			string(r.contents[m[0]:m[1]]), strPtr(""))
	}
}

func (r *checkRun) checkNoCommitMarker() {
	idx := bytes.Index(r.contents, []byte(noCommitMarker))
	if idx < 0 {
		return
	}
	r.raise(NoCommitMarker, AtOffset(idx), msgNoCommit, noCommitMarker, nil)
}
