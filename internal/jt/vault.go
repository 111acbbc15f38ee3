package jt

import (
	"context"
	"errors"
	"io"
)

// Artifact names an object an owner keeps in a vault.
type Artifact string

const (
	// ArtifactDatabase is the (optionally encrypted) store snapshot.
	ArtifactDatabase Artifact = "db"
	// ArtifactPublicKey is the snapshot encryption recipient.
	ArtifactPublicKey Artifact = "public_key"
	// ArtifactPrivateKey is the passphrase-protected identity.
	ArtifactPrivateKey Artifact = "private_key"
)

// Vault keeps per-owner artifacts off-machine so a store can be restored
// elsewhere. Each artifact carries a version used to detect a local store
// that is older than what was last published.
type Vault interface {
	// PutArtifact stores size bytes read from r under ownerID/name,
	// replacing any previous copy, and records version next to it.
	PutArtifact(ctx context.Context, ownerID string, name Artifact, r io.Reader, size int64, version int64) error

	// GetArtifact writes the stored artifact to w.
	GetArtifact(ctx context.Context, ownerID string, name Artifact, w io.Writer) error

	// ArtifactVersion returns the recorded version, or 0 if the artifact
	// has never been stored.
	ArtifactVersion(ctx context.Context, ownerID string, name Artifact) (int64, error)

	// ValidateSetup checks that the vault is reachable and writable.
	ValidateSetup(ctx context.Context) error
}

// ErrArtifactNotFound is returned by GetArtifact for an artifact that was
// never stored.
var ErrArtifactNotFound = errors.New("artifact not found")
