// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	signKeyLength = 32
)

// DeriveSigningKey stretches the configured token secret into the HMAC key
// capability tokens are signed with. The same secret and salt always yield
// the same key, so tokens survive a restart.
func DeriveSigningKey(secret, salt string) []byte {
	return argon2.IDKey([]byte(secret), []byte(salt), argon2Time, argon2Memory, argon2Threads, signKeyLength)
}

// SecretsEqual compares two shared secrets in constant time.
func SecretsEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return hmac.Equal(ha[:], hb[:])
}
