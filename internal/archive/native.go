// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"xapktool-cli/internal/config"

	"github.com/klauspost/compress/zip"
)

// Native implements Archiver in-process.
type Native struct {
	// Compression selects the method for written entries; empty means deflate.
	Compression config.Compression
}

// ExtractAll implements Archiver.
func (n *Native) ExtractAll(ctx context.Context, archivePath, destDir string) (err error) {
	absDestDir, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("failed to resolve destination directory: %w", err)
	}

	if err = os.MkdirAll(absDestDir, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := zipReader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	buf := make([]byte, copyBufferSize)

	for _, file := range zipReader.File {
		if err = ctx.Err(); err != nil {
			return err
		}

		destPath, joinErr := safeJoin(absDestDir, file.Name)
		if joinErr != nil {
			return joinErr
		}

		if file.FileInfo().IsDir() {
			if mkdirErr := os.MkdirAll(destPath, 0o755); mkdirErr != nil {
				return fmt.Errorf("failed to create directory: %w", mkdirErr)
			}
			continue
		}

		if mkdirErr := os.MkdirAll(filepath.Dir(destPath), 0o755); mkdirErr != nil {
			return fmt.Errorf("failed to create parent directory: %w", mkdirErr)
		}

		if extractErr := extractFile(file, destPath, buf); extractErr != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, extractErr)
		}
	}

	return nil
}

// ZipFlat implements Archiver.
func (n *Native) ZipFlat(ctx context.Context, srcDir, destPath string, opts FlatOptions) (err error) {
	files, err := flatFiles(srcDir, destPath, opts)
	if err != nil {
		return err
	}

	zipFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(destPath) // Best-effort cleanup of a partial archive
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	buf := make([]byte, copyBufferSize)
	for _, path := range files {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = n.addFile(zipWriter, path, buf); err != nil {
			return fmt.Errorf("failed to add %s: %w", filepath.Base(path), err)
		}
	}

	return nil
}

func (n *Native) method() uint16 {
	if n.Compression == config.CompressionStore {
		return zip.Store
	}
	return zip.Deflate
}

// addFile streams one file into the archive under its bare name.
func (n *Native) addFile(zw *zip.Writer, path string, buf []byte) (err error) {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create file header: %w", err)
	}
	header.Name = filepath.Base(path)
	header.Method = n.method()

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create ZIP entry: %w", err)
	}

	_, err = io.CopyBuffer(w, src, buf)
	return err
}

// writeEmpty writes a valid archive with no entries.
func writeEmpty(destPath string) (err error) {
	zipFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return zip.NewWriter(zipFile).Close()
}

// extractFile extracts a single file from the ZIP archive
func extractFile(file *zip.File, destPath string, buf []byte) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	perm := file.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // G110: bundles are user-supplied local files; size limits handled by filesystem
	_, err = io.CopyBuffer(destFile, rc, buf)
	return err
}
