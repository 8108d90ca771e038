package buildpipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ScriptExt is the extension of hop source files.
const ScriptExt = ".hop"

// CollectScripts expands targets into a sorted, de-duplicated list of
// scripts. Directories are walked recursively for *.hop files; plain file
// arguments are taken as is whatever their extension.
func CollectScripts(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}
		if !info.IsDir() {
			add(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && path != target && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && strings.HasSuffix(path, ScriptExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(out)
	return out, nil
}

// DisplayPaths renders files relative to baseDir with forward slashes,
// keeping paths that escape baseDir absolute. The result is index-aligned
// with files.
func DisplayPaths(files []string, baseDir string) []string {
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}
	out := make([]string, len(files))
	for i, file := range files {
		path := filepath.Clean(file)
		if base != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		out[i] = filepath.ToSlash(path)
	}
	return out
}
