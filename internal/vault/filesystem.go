package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"jobtrack/internal/jt"
)

// FileSystemVault stores artifacts under a directory, typically a mounted
// backup drive:
//
//	<root>/
//	  <ownerID>/
//	    db            (store snapshot)
//	    db.version
//	    public_key
//	    ...
type FileSystemVault struct {
	name string
	root string
}

// NewFileSystemVault creates root if needed.
func NewFileSystemVault(name, root string) (*FileSystemVault, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create vault root: %w", err)
	}
	return &FileSystemVault{name: name, root: root}, nil
}

// Name returns the configured vault name.
func (v *FileSystemVault) Name() string { return v.name }

// PutArtifact writes the artifact atomically, then its version file.
func (v *FileSystemVault) PutArtifact(_ context.Context, ownerID string, name jt.Artifact, r io.Reader, size int64, version int64) error {
	dir := filepath.Join(v.root, ownerID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create owner directory: %w", err)
	}

	dest := filepath.Join(dir, string(name))
	if err := writeAtomic(dest, r, size); err != nil {
		return err
	}

	versionData := strings.NewReader(strconv.FormatInt(version, 10))
	return writeAtomic(dest+".version", versionData, versionData.Size())
}

func (v *FileSystemVault) GetArtifact(_ context.Context, ownerID string, name jt.Artifact, w io.Writer) error {
	f, err := os.Open(filepath.Join(v.root, ownerID, string(name)))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s for %s: %w", name, ownerID, jt.ErrArtifactNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

func (v *FileSystemVault) ArtifactVersion(_ context.Context, ownerID string, name jt.Artifact) (int64, error) {
	data, err := os.ReadFile(filepath.Join(v.root, ownerID, string(name)+".version"))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading version file: %w", err)
	}

	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup checks that root is a writable directory.
func (v *FileSystemVault) ValidateSetup(context.Context) error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("vault root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", v.root)
	}

	check, err := os.CreateTemp(v.root, ".writable-*")
	if err != nil {
		return fmt.Errorf("vault root not writable: %w", err)
	}
	check.Close()
	return os.Remove(check.Name())
}

// writeAtomic copies r to a temp file next to dest and renames it into
// place once exactly size bytes were written.
func writeAtomic(dest string, r io.Reader, size int64) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, r)
	closeErr := tmp.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("failed to write data: %w", err)
	case closeErr != nil:
		err = fmt.Errorf("failed to close temp file: %w", closeErr)
	case written != size:
		err = fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

var _ jt.Vault = (*FileSystemVault)(nil)
