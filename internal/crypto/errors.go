package crypto

import "errors"

// Token error sentinels.
var (
	// ErrInvalidFormat means the token is not a well-formed v1 token.
	ErrInvalidFormat = errors.New("invalid token format")

	// ErrInvalidIterationCount means the embedded PBKDF2 iteration count is
	// missing, unparseable, or below the accepted floor.
	ErrInvalidIterationCount = errors.New("invalid iteration count")

	// ErrDecryptionFailed means AEAD authentication failed: wrong password
	// or a corrupted/tampered token. The two cases are indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed: wrong password or corrupted token")
)
