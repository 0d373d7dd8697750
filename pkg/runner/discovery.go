package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds reviewable files under opts.Paths.
// It returns a deduplicated, sorted list of absolute file paths.
//
// Explicitly named files are included when their extension matches, even inside
// hidden directories. Walked directories skip hidden entries and anything matching
// an exclude glob.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.extensions(),
		excludes:   opts.ExcludeGlobs,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if d.wants(abs) {
				d.add(abs)
			}
			continue
		}

		if err := d.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	excludes   []string
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(file string) {
	if _, ok := d.seen[file]; ok {
		return
	}
	d.seen[file] = struct{}{}
	d.files = append(d.files, file)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}
		// Symlinked directories are not followed; symlinked files are treated as files.
		if entry.Type()&fs.ModeSymlink != 0 && !isFileLink(p) {
			return nil
		}
		if d.wants(p) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func isFileLink(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// wants reports whether file has a reviewable extension and is not excluded.
func (d *discoverer) wants(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	return !d.excluded(file)
}

func (d *discoverer) excluded(file string) bool {
	rel, err := filepath.Rel(d.workDir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range d.excludes {
		if matchGlob(rel, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against a glob pattern.
//
// Patterns follow path.Match per segment, with "**" matching any number of
// segments. A pattern without a slash also matches the base name, so "*.min.js"
// excludes minified files at any depth. A pattern matching a directory matches
// everything beneath it.
func matchGlob(rel, pattern string) bool {
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(rel, "/"), strings.Split(pattern, "/"))
}

// matchSegments reports whether the path segments, or any prefix of them, match the pattern.
func matchSegments(parts, pattern []string) bool {
	if len(pattern) == 0 {
		// The pattern matched a directory containing the remaining parts.
		return true
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(parts); i++ {
			if matchSegments(parts[i:], pattern[1:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	ok, err := path.Match(pattern[0], parts[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(parts[1:], pattern[1:])
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
