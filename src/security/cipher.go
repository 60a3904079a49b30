package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

var (
	// ErrNoKey means CONFIG_CREDENTIALS_KEY is unset; encrypted values
	// cannot be read or written without it.
	ErrNoKey = errors.New("no configuration encryption key set")

	// ErrInvalidCiphertext means the stored payload is malformed or was
	// written with a different key.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

func loadKey() (*[keySize]byte, error) {
	encoded := GetConfig().ConfigCRKey
	if encoded == "" {
		return nil, ErrNoKey
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(raw))
	}

	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}

// EncryptString seals plaintext with the environment key and returns a
// base64 payload with the random nonce prefixed.
func EncryptString(plaintext string) (string, error) {
	key, err := loadKey()
	if err != nil {
		return "", err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString reverses EncryptString.
func DecryptString(payload string) (string, error) {
	key, err := loadKey()
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plaintext, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, key)
	if !ok {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
