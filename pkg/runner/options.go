// Package runner checks many files: it discovers candidates under the
// given paths and feeds them through a lint.Pipeline on a bounded pool.
package runner

import "github.com/yaklabco/gotextlint/pkg/config"

// Options controls discovery and the worker pool.
type Options struct {
	// Paths are files or directories to check. Empty means ".".
	Paths []string

	// Files, when set, are checked as given and no walking happens.
	// Hook mode passes the staged files here.
	Files []string

	// Contents, when set, are checked from memory instead of being read
	// from disk, and no walking happens. Hook mode passes the staged index
	// content here; fixes reach disk through lint.Pipeline.ProcessStaged.
	Contents []Content

	// WorkingDir resolves relative paths. Empty means the process cwd.
	WorkingDir string

	// Extensions restricts files to these extensions. Empty means every
	// file that is not binary.
	Extensions []string

	IncludeGlobs []string
	ExcludeGlobs []string

	// IncludeVendored keeps paths go-enry classifies as vendored.
	IncludeVendored bool

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs bounds concurrency; non-positive means runtime.NumCPU().
	Jobs int

	Config *config.Config
}

// Content is a file checked from memory.
type Content struct {
	Path string
	Data []byte
}

// binarySniffLen is how much of a file is inspected for binary content.
const binarySniffLen = 8 << 10

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OptionsFromConfig seeds Options from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}
