// Package crypto implements the password-protected share token.
//
// Wire format (bit-exact across implementations):
//
//	v1.<b64url(salt 16B)>.<b64url(nonce 12B)>.<base36(iterations)>.<b64url(ciphertext+tag)>
//
// joined by literal dots, base64url without padding. The key is derived with
// PBKDF2-SHA256 from the password and the embedded salt; the payload is
// sealed with AES-256-GCM. Version tag, salt, nonce and iteration count are
// plaintext by design: none of them are secret.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	tokenVersion = "v1"
	saltSize     = 16
	nonceSize    = 12
	keySize      = 32

	// DefaultIterations is the PBKDF2 iteration count for new tokens.
	// Configuration may raise it but never lower it.
	DefaultIterations = 250_000

	// MinIterations is the floor accepted when decrypting. Tokens claiming
	// fewer iterations are rejected outright.
	MinIterations = 100_000
)

func deriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
}

// Encrypt seals plaintext under a key derived from password and returns the
// share token. Salt and nonce are freshly random on every call, so two
// encryptions of the same plaintext yield different tokens that both decrypt
// to the same value. Iteration counts below DefaultIterations are raised to
// it.
func Encrypt(plaintext, password string, iterations int) (string, error) {
	if iterations < DefaultIterations {
		iterations = DefaultIterations
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	aead, err := newAEAD(deriveKey(password, salt, iterations))
	if err != nil {
		return "", err
	}
	ct := aead.Seal(nil, nonce, []byte(plaintext), nil)

	b64 := base64.RawURLEncoding
	return strings.Join([]string{
		tokenVersion,
		b64.EncodeToString(salt),
		b64.EncodeToString(nonce),
		strconv.FormatInt(int64(iterations), 36),
		b64.EncodeToString(ct),
	}, "."), nil
}

// Decrypt reverses Encrypt. It fails with ErrInvalidFormat when the token is
// structurally wrong, ErrInvalidIterationCount when the embedded count is
// below MinIterations, and ErrDecryptionFailed when authentication fails. A
// wrong password and a tampered token are indistinguishable by design; both
// surface as ErrDecryptionFailed.
func Decrypt(token, password string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 5 || parts[0] != tokenVersion {
		return "", ErrInvalidFormat
	}

	b64 := base64.RawURLEncoding
	salt, err := b64.DecodeString(parts[1])
	if err != nil || len(salt) != saltSize {
		return "", ErrInvalidFormat
	}
	nonce, err := b64.DecodeString(parts[2])
	if err != nil || len(nonce) != nonceSize {
		return "", ErrInvalidFormat
	}
	ct, err := b64.DecodeString(parts[4])
	if err != nil {
		return "", ErrInvalidFormat
	}

	iterations, err := strconv.ParseInt(parts[3], 36, 64)
	if err != nil || iterations < MinIterations {
		return "", ErrInvalidIterationCount
	}

	aead, err := newAEAD(deriveKey(password, salt, int(iterations)))
	if err != nil {
		return "", err
	}
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(pt), nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
