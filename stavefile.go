//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"i":     Install,
	"smoke": Smoke.Stdin,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Smoke st.Namespace
)

const binary = "bin/snipreview"

// Build compiles snipreview when any source changed since the last build.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building snipreview...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/snipreview")
}

// Install installs snipreview to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/snipreview")
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs every package under gotestsum with the race detector.
func (Test) Default() error {
	jobs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", "pkgname-and-test-fails", "--",
		"-race", "-p", jobs, "./...", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Rules runs only the rule, engine, and runner packages, shuffled.
func (Test) Rules() error {
	return sh.RunV("go", "test", "-race", "-shuffle=on",
		"./pkg/review/...", "./pkg/runner/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt fails when any file needs gofmt.
func (Lint) Fmt() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate runs the checks CI requires before merge.
func (CI) Gate() {
	st.SerialDeps(Lint.Fmt, Build, Test.Default, CI.ModTidy, Smoke.Stdin, Smoke.Article)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after go mod tidy")
	}
	return nil
}

// Stdin reviews a seeded Python snippet piped on stdin.
func (Smoke) Stdin() error {
	st.Deps(Build)
	return smoke(smokeSnippet, "--stdin", "--lang", "python", "--seed", "1", "--format", "summary")
}

// Article reviews a markdown article whose repeated block hits the cache.
func (Smoke) Article() error {
	st.Deps(Build)
	dir, err := os.MkdirTemp("", "snipreview-smoke")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := dir + "/article.md"
	if err := os.WriteFile(path, []byte(smokeArticle), 0o600); err != nil {
		return err
	}
	return smoke("", "--seed", "1", "--jobs", "2", path)
}

// smoke runs the built binary. Exit code 1 only reports error-kind issues.
func smoke(stdin string, args ...string) error {
	cmd := exec.Command(binary, append([]string{"review", "--color", "never"}, args...)...) //nolint:gosec // fixed binary
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return nil
	}
	if err != nil {
		return fmt.Errorf("smoke review: %w", err)
	}
	return nil
}

func readModFiles() (string, error) {
	var sb strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		sb.Write(data)
	}
	return sb.String(), nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit, and build date into main.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

const smokeSnippet = `def load(path):
    try:
        print(open(path).read())
    except:
        return None
    if path == None:
        return None
`

const smokeArticle = "# Fetching data\n\n" +
	"```js\nfetch('http://localhost:3000/api').then(r => console.log(r));\n```\n\n" +
	"The same call again:\n\n" +
	"```js\nfetch('http://localhost:3000/api').then(r => console.log(r));\n```\n"
