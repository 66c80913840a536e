// Package codec encrypts short strings (domains, account emails) for storage.
//
// Every call to Encrypt draws a fresh random nonce, so encrypting the same
// plaintext twice yields different tokens. Values must be compared only after
// Decrypt.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

var ErrMalformedToken = errors.New("malformed ciphertext token")

// Codec is the encrypt/decrypt contract the scheduler depends on.
type Codec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
}

// AESCodec implements Codec with AES-256-GCM.
// Tokens are base64(nonce || ciphertext).
type AESCodec struct {
	aead cipher.AEAD
}

// DeriveKey stretches the configured secret into a 32-byte AES key.
func DeriveKey(secret []byte) ([]byte, error) {
	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, secret, nil, []byte("nudge domain codec"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// NewAESCodec builds a codec from an arbitrary-length secret.
func NewAESCodec(secret []byte) (*AESCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty encryption key")
	}

	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESCodec{aead: aead}, nil
}

func (c *AESCodec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *AESCodec) Decrypt(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	ns := c.aead.NonceSize()
	if len(raw) < ns+c.aead.Overhead() {
		return "", ErrMalformedToken
	}

	plaintext, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plaintext), nil
}

// DecryptOptional decrypts token, treating the empty string as absent.
func DecryptOptional(c Codec, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	return c.Decrypt(token)
}
