package serverconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// backupSuffix is appended to the output path when a previous file is moved
// aside.
const backupSuffix = ".backup"

// backupExisting moves a previous output file to its ".backup" sibling.
// A stale backup at that name is removed first, so the rename always
// overwrites rather than fails. Missing output is not an error.
func backupExisting(path string, out io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat existing output %s: %w", path, err)
	}

	backupPath := path + backupSuffix
	fmt.Fprintf(out, "Backing up existing %s to %s\n", filepath.Base(path), backupPath)

	if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale backup %s: %w", backupPath, err)
	}
	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return nil
}

// writeJSON serializes doc as indented UTF-8 JSON to path, creating parent
// directories as needed. HTML escaping is disabled so non-ASCII text (server
// names, welcome messages) survives verbatim.
func writeJSON(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
