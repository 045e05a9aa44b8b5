package security

import "crypto/subtle"

// SecretsEqual reports whether the presented credential equals the expected
// one byte for byte. The comparison time does not depend on where the first
// mismatching byte is.
func SecretsEqual(presented, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
