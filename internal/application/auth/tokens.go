package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken sha256 en hex del refresh token. Es lo único que se persiste.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
