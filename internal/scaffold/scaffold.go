// Package scaffold provides the embedded starter files written by the
// init command: a site config, an article template carrying the full
// placeholder set, and a homepage carrying the auto-managed marker
// region.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed files
var files embed.FS

// WriteAll copies every scaffold file into dir, skipping files that
// already exist so a re-run never clobbers a live site. It returns the
// names it actually wrote.
func WriteAll(dir string) ([]string, error) {
	entries, err := fs.ReadDir(files, "files")
	if err != nil {
		return nil, fmt.Errorf("reading scaffold: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating site directory: %w", err)
	}

	var written []string
	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(target); err == nil {
			continue
		}
		data, err := files.ReadFile("files/" + entry.Name())
		if err != nil {
			return written, fmt.Errorf("reading scaffold file %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", target, err)
		}
		written = append(written, entry.Name())
	}
	return written, nil
}
