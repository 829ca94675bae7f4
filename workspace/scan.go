// Copyright © 2026 The Quill authors

// Package workspace discovers Quill source files on disk and watches them
// for changes. Discovery honors a root .gitignore and user-supplied glob
// excludes.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// Ext is the file extension of Quill source files.
const Ext = ".quill"

// Filter decides which paths under a root take part in analysis.
type Filter struct {
	root     string
	excludes []glob.Glob
	ignore   *ignore.GitIgnore
}

// CompileExcludes compiles glob patterns using '/' as the separator, so
// "*" stays within one path segment and "**" crosses segments.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// NewFilter returns a filter for files under root. A .gitignore directly in
// root is loaded when present.
func NewFilter(root string, excludes []string) (*Filter, error) {
	globs, err := CompileExcludes(excludes)
	if err != nil {
		return nil, err
	}
	f := &Filter{root: root, excludes: globs}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	switch {
	case err == nil:
		f.ignore = gi
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading .gitignore: %w", err)
	}
	return f, nil
}

// SkipDir reports whether the directory at path should not be descended.
// Hidden directories and node_modules are always skipped; the root never is.
func (f *Filter) SkipDir(path string) bool {
	rel := f.rel(path)
	if rel == "." {
		return false
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || base == "node_modules" {
		return true
	}
	if f.ignore != nil && (f.ignore.MatchesPath(rel) || f.ignore.MatchesPath(rel+"/")) {
		return true
	}
	return f.excluded(rel, base)
}

// SkipFile reports whether the file at path is not a Quill source or is
// excluded.
func (f *Filter) SkipFile(path string) bool {
	if filepath.Ext(path) != Ext {
		return true
	}
	rel := f.rel(path)
	if f.ignore != nil && f.ignore.MatchesPath(rel) {
		return true
	}
	return f.excluded(rel, filepath.Base(path))
}

func (f *Filter) excluded(rel, base string) bool {
	for _, g := range f.excludes {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func (f *Filter) rel(path string) string {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// FindFiles returns the Quill files under root in lexical order.
func FindFiles(root string, excludes []string) ([]string, error) {
	filter, err := NewFilter(root, excludes)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if filter.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !filter.SkipFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandArgs expands arguments ending in "/..." to every Quill file found
// recursively under that directory. Other arguments pass through unchanged,
// so naming a file explicitly bypasses the excludes.
func ExpandArgs(args []string, excludes []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		dir, ok := strings.CutSuffix(arg, "/...")
		if !ok {
			out = append(out, arg)
			continue
		}
		if dir == "" {
			dir = "."
		}
		files, err := FindFiles(dir, excludes)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", arg, err)
		}
		out = append(out, files...)
	}
	return out, nil
}
