// Package runner reviews every snippet found under a set of paths.
package runner

import (
	"runtime"

	"github.com/yaklabco/snipreview/pkg/config"
)

// Options controls a multi-file review run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// to review. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir. They merge config ignores and --ignore flags.
	ExcludeGlobs []string

	// Jobs bounds both the file workers and the concurrent snippet reviews per file.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the file types reviewed by default:
// Markdown articles plus JavaScript, TypeScript and Python sources.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".js", ".jsx", ".mjs", ".ts", ".tsx", ".py"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return o.Jobs
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
