// Package signature produces the tamper-evident code that binds a check
// result to the checker secret, the task and the caller's salt.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Code returns the lowercase 64-character hex SHA-256 digest of
// "<secret>:<task>:<salt>:<result>", with the result rendered as a
// signed decimal integer.
func Code(secret, task string, salt int, result byte) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%s:%d:%d", secret, task, salt, int8(result)))
	return hex.EncodeToString(sum[:])
}
