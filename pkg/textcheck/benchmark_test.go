package textcheck_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gotextlint/pkg/textcheck"
)

func benchmarkContent(lines int) []byte {
	var sb strings.Builder
	for i := range lines {
		switch i % 4 {
		case 0:
			sb.WriteString("short line\n")
		case 1:
			sb.WriteString("\tindented with a tab   \n")
		case 2:
			sb.WriteString(strings.Repeat("word ", 30) + "\n")
		default:
			sb.WriteString("plain text that stays under the limit\n")
		}
	}
	return []byte(sb.String())
}

// Benchmark a clean buffer where no check fires.
func BenchmarkCheckClean(b *testing.B) {
	content := []byte(strings.Repeat("nothing to report here\n", 1000))
	checker := textcheck.New(textcheck.Options{})

	b.ReportAllocs()
	b.SetBytes(int64(len(content)))
	for b.Loop() {
		if res := checker.Check("clean.txt", content); len(res.Findings) != 0 {
			b.Fatalf("unexpected findings: %d", len(res.Findings))
		}
	}
}

// Benchmark a buffer where tab, length and whitespace checks all fire.
func BenchmarkCheckNoisy(b *testing.B) {
	content := benchmarkContent(1000)
	checker := textcheck.New(textcheck.Options{CommitHookMode: true})

	b.ReportAllocs()
	b.SetBytes(int64(len(content)))
	for b.Loop() {
		if res := checker.Check("noisy.txt", content); len(res.Findings) == 0 {
			b.Fatal("expected findings")
		}
	}
}

// Benchmark line index construction and lookups.
func BenchmarkLineIndex(b *testing.B) {
	content := benchmarkContent(1000)

	b.ReportAllocs()
	for b.Loop() {
		idx := textcheck.NewLineIndex(content)
		for line := 1; line <= idx.LineCount(); line += 50 {
			_ = idx.LineContent(line)
		}
	}
}
