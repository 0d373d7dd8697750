package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/snipreview/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.json")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte(`{"files":[]}`), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != `{"files":[]}` {
			t.Errorf("content = %q", got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %v, want %v", info.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "report.txt")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target file, found %d entries", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "report.txt")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "report.txt")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Error("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file should not exist after cancelled write")
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "report.sarif")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	if err != nil || !written {
		t.Fatalf("first write: written=%v err=%v", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	if err != nil || written {
		t.Errorf("identical write: written=%v err=%v", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	if err != nil || !written {
		t.Errorf("changed write: written=%v err=%v", written, err)
	}
}

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("```js\neval(x)\n```\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "out.txt")

		if err := fsutil.WriteAtomic(context.Background(), path, content, 0); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}
	})
}
