package admin

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// MinPasswordLength is the shortest password ChangePassword accepts.
const MinPasswordLength = 4

// HashPassword returns the lowercase hex SHA-256 digest of plain. The same
// digest is stored in admin_settings.admin_password_hash.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether entered hashes to storedDigest. An empty digest
// never matches.
func Verify(entered, storedDigest string) bool {
	storedDigest = strings.ToLower(strings.TrimSpace(storedDigest))
	if storedDigest == "" {
		return false
	}
	computed := HashPassword(entered)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
