package encryption

import (
	"bytes"
	"fmt"
	"io"

	"jobtrack/internal/jt"
)

// sealMarker is prepended by TestEncryptor so sealed output never equals
// the plaintext.
var sealMarker = []byte("JTSEAL\x00\x01")

// TestEncryptor is a deterministic, crypto-free Encryptor for tests. It
// still checks the passphrase so restore error paths can be exercised.
type TestEncryptor struct {
	passphrase string
}

var _ jt.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.passphrase = passphrase
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(sealMarker); err != nil {
		return fmt.Errorf("writing seal marker: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

// Unlock accepts any passphrase until Setup has recorded one.
func (e *TestEncryptor) Unlock(passphrase string) (jt.DecryptionContext, error) {
	if e.passphrase != "" && passphrase != e.passphrase {
		return nil, fmt.Errorf("decrypting private key: incorrect passphrase")
	}
	return testDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

type testDecryptionContext struct{}

func (testDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	marker := make([]byte, len(sealMarker))
	if _, err := io.ReadFull(r, marker); err != nil {
		return fmt.Errorf("reading seal marker: %w", err)
	}
	if !bytes.Equal(marker, sealMarker) {
		return fmt.Errorf("data was not sealed by the test encryptor")
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

// PlainEncryptor passes data through untouched. It backs encryption type
// "none", for vaults the user already trusts.
type PlainEncryptor struct{}

var _ jt.Encryptor = PlainEncryptor{}

func (PlainEncryptor) Setup(string) error { return nil }

func (PlainEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (PlainEncryptor) Unlock(string) (jt.DecryptionContext, error) {
	return plainDecryptionContext{}, nil
}

func (PlainEncryptor) IsConfigured() bool { return true }

type plainDecryptionContext struct{}

func (plainDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
