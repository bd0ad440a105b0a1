package runner

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/donaldgifford/phpspace/internal/config"
)

// input is one file to analyse, or a path that could not be expanded.
type input struct {
	path string
	err  error
}

// collectFiles expands the command-line paths. Files are taken as given;
// directories are walked in lexical order for files with a configured
// extension. Excluded paths are skipped and duplicates dropped.
func collectFiles(paths []string, cfg *config.Config) []input {
	var out []input
	seen := make(map[string]bool)
	add := func(in input) {
		if seen[in.path] {
			return
		}
		seen[in.path] = true
		out = append(out, in)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			add(input{path: root, err: err})
			continue
		}
		if !info.IsDir() {
			add(input{path: root})
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				add(input{path: p, err: err})
				return nil
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				rel = p
			}
			if rel != "." && excluded(rel, cfg.Exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && hasExtension(p, cfg.Extensions) {
				add(input{path: p})
			}
			return nil
		})
		if err != nil {
			add(input{path: root, err: err})
		}
	}
	return out
}

func hasExtension(p string, exts []string) bool {
	ext := filepath.Ext(p)
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// excluded reports whether rel matches an exclude pattern. "dir/**"
// excludes a directory and everything below it; other patterns are
// matched against the whole relative path and against its base name.
func excluded(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range patterns {
		if prefix, ok := strings.CutSuffix(pat, "/**"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, path.Base(rel)); ok {
			return true
		}
	}
	return false
}
