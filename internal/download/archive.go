package download

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExtractZip unpacks every regular file entry in archivePath into destDir,
// flattening any internal directory structure; mod package zips are not
// expected to nest directories beyond a single top-level folder, and the
// engine only cares about the group/con/def files it finds by name.
func ExtractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("download: opening %s: %w", archivePath, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("download: creating %s: %w", destDir, err)
	}

	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(entry.Name)
		if name == "" || name == "." {
			continue
		}
		if err := extractZipEntry(entry, filepath.Join(destDir, name)); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(entry *zip.File, destPath string) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("download: opening archive entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("download: creating %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("download: extracting %s: %w", entry.Name, err)
	}
	return nil
}
