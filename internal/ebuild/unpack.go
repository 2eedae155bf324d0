package ebuild

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/slchris/gpypi/internal/pypi"
)

// Unpack downloads the source distribution into a fresh work directory
// under base and extracts it there. The root of the unpacked tree is
// stored in UnpackedDir and returned. The work directory lives until
// Cleanup is called.
func (e *Ebuild) Unpack(ctx context.Context, client *pypi.Client, base string) (string, error) {
	dir := e.WorkDir(base)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	e.workDir = dir

	archive := filepath.Join(dir, archiveName(e.uri))
	if err := client.DownloadFile(ctx, e.uri, archive); err != nil {
		return "", err
	}
	if err := extract(archive, dir); err != nil {
		return "", err
	}

	e.UnpackedDir = e.unpackedRoot(dir, archive)
	return e.UnpackedDir, nil
}

// archiveName returns the file name component of uri.
func archiveName(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return filepath.Base(uri)
	}
	return filepath.Base(parsed.Path)
}

// unpackedRoot locates the top of the extracted tree: the directory named
// after MY_P or P when present, otherwise the single extracted directory,
// otherwise the work directory itself.
func (e *Ebuild) unpackedRoot(dir, archive string) string {
	candidates := []string{e.vars.MyPRaw, e.vars.P}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return dir
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	if len(dirs) == 1 {
		return dirs[0]
	}
	return dir
}

// extract unpacks archive into dir based on its extension.
func extract(archive, dir string) error {
	switch {
	case strings.HasSuffix(archive, ".zip"):
		return extractZip(archive, dir)
	case strings.HasSuffix(archive, ".tar.gz"), strings.HasSuffix(archive, ".tgz"):
		return extractTar(archive, dir, func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case strings.HasSuffix(archive, ".tar.bz2"), strings.HasSuffix(archive, ".tbz2"):
		return extractTar(archive, dir, func(r io.Reader) (io.Reader, error) {
			return bzip2.NewReader(r), nil
		})
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archive))
	}
}

func extractTar(archive, dir string, decompress func(io.Reader) (io.Reader, error)) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	r, err := decompress(f)
	if err != nil {
		return fmt.Errorf("failed to decompress archive: %w", err)
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		path, err := securePath(dir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		case tar.TypeReg:
			if err := writeEntry(path, tr); err != nil {
				return err
			}
		}
	}
}

func extractZip(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = r.Close() }()

	for _, file := range r.File {
		path, err := securePath(dir, file.Name)
		if err != nil {
			return err
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}
		err = writeEntry(path, rc)
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// securePath joins name onto dir, rejecting entries that escape it.
func securePath(dir, name string) (string, error) {
	path := filepath.Join(dir, filepath.Clean(name))
	if !strings.HasPrefix(path, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes work directory: %s", name)
	}
	return path, nil
}

func writeEntry(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadLongDescription returns the package description from the unpacked
// tree's PKG-INFO, or an empty string when unavailable.
func ReadLongDescription(dir string) string {
	body, err := os.ReadFile(filepath.Join(dir, "PKG-INFO"))
	if err != nil {
		return ""
	}
	text := strings.ReplaceAll(string(body), "\r\n", "\n")

	// Metadata 2.1 puts the description in the message body.
	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		if desc := strings.TrimSpace(text[idx+2:]); desc != "" {
			return desc
		}
	}

	// Older formats fold it into the Description header.
	var lines []string
	collecting := false
	for _, line := range strings.Split(text, "\n") {
		if collecting {
			if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
				lines = append(lines, strings.TrimSpace(line))
				continue
			}
			break
		}
		if strings.HasPrefix(line, "Description:") {
			collecting = true
			if rest := strings.TrimSpace(strings.TrimPrefix(line, "Description:")); rest != "" {
				lines = append(lines, rest)
			}
		}
	}
	return strings.Join(lines, "\n")
}
