package vault

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"jobtrack/internal/jt"
)

type memoryArtifact struct {
	data    []byte
	version int64
}

// MemoryVault keeps artifacts in a map. It is safe for concurrent use and
// mostly useful in tests.
type MemoryVault struct {
	name      string
	mu        sync.RWMutex
	artifacts map[string]memoryArtifact
}

// NewMemoryVault creates an empty vault.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:      name,
		artifacts: make(map[string]memoryArtifact),
	}
}

// Name returns the configured vault name.
func (m *MemoryVault) Name() string { return m.name }

func (m *MemoryVault) PutArtifact(_ context.Context, ownerID string, name jt.Artifact, r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[artifactKey(ownerID, name)] = memoryArtifact{data: data, version: version}
	return nil
}

func (m *MemoryVault) GetArtifact(_ context.Context, ownerID string, name jt.Artifact, w io.Writer) error {
	m.mu.RLock()
	a, ok := m.artifacts[artifactKey(ownerID, name)]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s for %s: %w", name, ownerID, jt.ErrArtifactNotFound)
	}

	if _, err := io.Copy(w, bytes.NewReader(a.data)); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (m *MemoryVault) ArtifactVersion(_ context.Context, ownerID string, name jt.Artifact) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.artifacts[artifactKey(ownerID, name)].version, nil
}

func (m *MemoryVault) ValidateSetup(context.Context) error {
	return nil
}

func artifactKey(ownerID string, name jt.Artifact) string {
	return ownerID + "/" + string(name)
}

var _ jt.Vault = (*MemoryVault)(nil)
