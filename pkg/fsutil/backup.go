package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to a path to name its sidecar backup.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its sidecar backup, replacing any
// previous backup. It returns the backup path, or "" when path does not exist.
func CreateBackup(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat original for backup: %w", err)
	}
	if stat.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	backupPath := BackupPath(path)
	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return backupPath, nil
}
