package testutil

import (
	"jobtrack/internal/encryption"
)

// NewTestEncryptor creates a deterministic encryptor that needs no keys.
func NewTestEncryptor() *encryption.TestEncryptor {
	return encryption.NewTestEncryptor()
}
