package jt

import "io"

// Encryptor seals store snapshots before they leave the machine.
// Sealing only needs the public key; opening needs the passphrase that
// protects the private key.
type Encryptor interface {
	// Setup generates a key pair once, during `jt config init`. The public
	// key is written in plaintext and the private key is encrypted with
	// passphrase.
	Setup(passphrase string) error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock opens the private key with passphrase. A wrong passphrase is
	// an error.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether both key files exist.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for one restore.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
