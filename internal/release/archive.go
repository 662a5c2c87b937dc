package release

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vintagehost/vsctl/internal/semver"
)

// excludedDirs are never packaged, at any nesting depth. They hold version
// control and CI metadata, not server content.
var excludedDirs = map[string]bool{
	".git":    true,
	".github": true,
}

// Archive packages the work tree rooted at root into a zip named
// {repoName}-{version}.zip in root itself. Every entry is rewritten to live
// under a single {repoName}-{version}/ top-level directory. The path of the
// created archive is returned.
func Archive(root, repoName string, version semver.Version) (string, error) {
	prefix := fmt.Sprintf("%s-%s", repoName, version)
	zipName := prefix + ".zip"
	zipPath := filepath.Join(root, zipName)

	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive %s: %w", zipPath, err)
	}

	zw := zip.NewWriter(f)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		// The archive under construction lives inside root; skip it.
		if rel == zipName {
			return nil
		}
		return addFile(zw, path, prefix+"/"+filepath.ToSlash(rel))
	})
	if walkErr != nil {
		zw.Close()
		f.Close()
		os.Remove(zipPath)
		return "", fmt.Errorf("failed to package work tree: %w", walkErr)
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to finalize archive %s: %w", zipPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive %s: %w", zipPath, err)
	}
	return zipPath, nil
}

// addFile writes a single file into the archive under the given entry name.
func addFile(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	if closeErr := src.Close(); err == nil {
		err = closeErr
	}
	return err
}
