// Package backup copies the processed inputs and the rendered snapshot
// into a dated directory, only once every file normalized cleanly.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// dirFormat names the dated backup directory, e.g. backup_2026.08.29.
const dirFormat = "backup_2006.01.02"

// snapshotFile holds the rendered ledger beside the copied inputs.
const snapshotFile = "snapshot.txt"

// Run copies every input file plus the snapshot text into a dated
// directory under parent and returns the directory path.
func Run(parent string, files []string, snapshot string, now time.Time) (string, error) {
	dir := filepath.Join(parent, now.Format(dirFormat))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	for _, f := range files {
		if err := copyFile(f, filepath.Join(dir, filepath.Base(f))); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(filepath.Join(dir, snapshotFile), []byte(snapshot), 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return dir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
