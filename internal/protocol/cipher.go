package protocol

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/net/CFB8"
)

// SharedSecretSize is the AES-128 key length the login exchange uses.
const SharedSecretSize = 16

// Each direction gets its own stream; the shared secret is both key and IV.

func newDecryptReader(r io.Reader, secret []byte) (io.Reader, error) {
	block, err := newBlock(secret)
	if err != nil {
		return nil, err
	}
	return cipher.StreamReader{S: CFB8.NewCFB8Decrypt(block, secret), R: r}, nil
}

func newEncryptWriter(w io.Writer, secret []byte) (io.Writer, error) {
	block, err := newBlock(secret)
	if err != nil {
		return nil, err
	}
	return cipher.StreamWriter{S: CFB8.NewCFB8Encrypt(block, secret), W: w}, nil
}

func newBlock(secret []byte) (cipher.Block, error) {
	if len(secret) != SharedSecretSize {
		return nil, fmt.Errorf("shared secret must be %d bytes, got %d", SharedSecretSize, len(secret))
	}
	return aes.NewCipher(secret)
}

// NewEncryptedPipe wraps both directions of rw. The server side of a fake
// login uses it to mirror what the halves do after EncryptionResponse.
func NewEncryptedPipe(rw io.ReadWriter, secret []byte) (io.Reader, io.Writer, error) {
	r, err := newDecryptReader(rw, secret)
	if err != nil {
		return nil, nil, err
	}
	w, err := newEncryptWriter(rw, secret)
	if err != nil {
		return nil, nil, err
	}
	return r, w, nil
}
