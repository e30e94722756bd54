package jsonstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/idilsaglam/costcheck/internal/export"
)

// Export artifacts land in a plain directory, one file per export.
// There is no other persistence: resuming means loading a JSON export.

// OutputDir resolves dir, defaulting to the working directory.
func OutputDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return wd, nil
}

// Save writes a file through a temp file in the same directory and renames
// it into place, so a failed export never leaves a truncated artifact.
func Save(dir, name string, write func(io.Writer) error) (string, error) {
	dir, err := OutputDir(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close: %w", err)
	}
	p := filepath.Join(dir, name)
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	return p, nil
}

// Load reads a JSON export. A directory argument means the default export
// file name inside it.
func Load(path string) (export.Document, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, export.JSONFilename)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return export.Document{}, fmt.Errorf("no export at %s: %w", path, err)
		}
		return export.Document{}, fmt.Errorf("read file: %w", err)
	}
	defer f.Close()
	doc, err := export.Decode(f)
	if err != nil {
		return export.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// SaveExport renders s in format f through reg and saves it under the
// exporter's file name in dir.
func SaveExport(dir string, reg *export.Registry, f export.Format, s export.Snapshot) (string, error) {
	e, ok := reg.Exporter(f)
	if !ok {
		return "", fmt.Errorf("%w: %q", export.ErrUnknownFormat, f)
	}
	return Save(dir, e.Filename(s), func(w io.Writer) error {
		return reg.Export(w, f, s)
	})
}
