package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/Versifine/relay/internal/protocol"
)

var ErrNotRSAKey = errors.New("server public key is not RSA")

// NewSharedSecret returns a fresh AES key for one login exchange.
func NewSharedSecret() ([]byte, error) {
	secret := make([]byte, protocol.SharedSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate shared secret: %w", err)
	}
	return secret, nil
}

// EncryptPKCS1 encrypts data with the DER-encoded public key a server sends
// in its EncryptionRequest.
func EncryptPKCS1(publicKeyDER, data []byte) ([]byte, error) {
	parsed, err := x509.ParsePKIXPublicKey(publicKeyDER)
	if err != nil {
		return nil, fmt.Errorf("parse server public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSAKey
	}
	out, err := rsa.EncryptPKCS1v15(rand.Reader, key, data)
	if err != nil {
		return nil, fmt.Errorf("rsa encrypt: %w", err)
	}
	return out, nil
}
