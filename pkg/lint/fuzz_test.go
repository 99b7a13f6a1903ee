package lint_test

import (
	"context"
	"testing"

	"github.com/yaklabco/gotextlint/pkg/config"
)

func FuzzPipeline_FixConverges(f *testing.F) {
	f.Add([]byte("a\tb \nend"))
	f.Add([]byte("\t\t  \n \t \n"))
	f.Add([]byte("x\r\n\ty  \n"))
	f.Add([]byte("   "))
	f.Add([]byte("\xff\t\xfe \n"))

	pipeline := newPipeline()
	ctx := context.Background()

	f.Fuzz(func(t *testing.T, content []byte) {
		result, err := pipeline.ProcessContent(ctx, "fuzz.txt", content, config.NewConfig(), fixOptions())
		if err != nil {
			t.Fatalf("ProcessContent: %v", err)
		}
		if result.HasFixes() {
			t.Fatalf("fixes still pending after %d passes", result.FixPasses)
		}
		if !result.Modified {
			return
		}

		again, err := pipeline.ProcessContent(ctx, "fuzz.txt", result.ModifiedContent, config.NewConfig(), fixOptions())
		if err != nil {
			t.Fatalf("ProcessContent on fixed content: %v", err)
		}
		if again.Modified {
			t.Errorf("fixing %q twice changed it again to %q", result.ModifiedContent, again.ModifiedContent)
		}
	})
}
