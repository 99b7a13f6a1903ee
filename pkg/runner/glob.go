package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// matchGlob matches a slash-separated relative path against pattern.
// "**" matches any number of path segments, other segments use path.Match.
// A pattern without "/" also matches the base name, and a pattern that
// matches a directory matches everything below it.
func matchGlob(rel, pattern string) bool {
	rel = filepath.ToSlash(rel)
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	patSegs := strings.Split(strings.TrimSuffix(pattern, "/"), "/")
	relSegs := strings.Split(rel, "/")

	// A match on a leading run of segments means rel is under a matched
	// directory.
	for n := len(relSegs); n > 0; n-- {
		if matchSegments(patSegs, relSegs[:n]) {
			return true
		}
	}
	return false
}

func matchSegments(pat, segs []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			rest := pat[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, err := path.Match(pat[0], segs[0]); err != nil || !ok {
			return false
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}

func matchAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		if matchGlob(rel, p) {
			return true
		}
	}
	return false
}
