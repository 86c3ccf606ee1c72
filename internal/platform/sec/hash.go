// Copyright (c) 2026 RateUp. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// # Password Hashing

// HasherParams tunes the argon2id derivation.
type HasherParams struct {
	Time       uint32
	Memory     uint32 // KiB
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

// DefaultHasherParams are the production argon2id settings.
var DefaultHasherParams = HasherParams{
	Time:       1,
	Memory:     64 * 1024,
	Threads:    4,
	KeyLength:  32,
	SaltLength: 16,
}

// hashSeparator splits the hex salt from the hex derived key.
const hashSeparator = ":"

// legacyBcryptPrefix marks hashes written by the previous bcrypt-based deployment.
const legacyBcryptPrefix = "$2"

// Hasher derives and verifies salted password hashes of the form "salt:key"
// (both hex-encoded). It is safe for concurrent use.
type Hasher struct {
	params HasherParams
	random io.Reader
}

// NewHasher creates a [Hasher] with the given derivation parameters.
func NewHasher(params HasherParams) *Hasher {
	return &Hasher{params: params, random: rand.Reader}
}

/*
Hash derives a new opaque hash for plaintext.

Description: A fresh random salt is drawn for every call, so hashing the same
password twice never yields the same string.

Returns:
  - string: "hex(salt):hex(key)"
  - error: Only when the entropy source fails
*/
func (hasher *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, hasher.params.SaltLength)
	if _, err := io.ReadFull(hasher.random, salt); err != nil {
		return "", fmt.Errorf("sec: failed to read salt: %w", err)
	}

	key := hasher.derive(plaintext, salt)
	return hex.EncodeToString(salt) + hashSeparator + hex.EncodeToString(key), nil
}

/*
Verify reports whether plaintext matches the stored hash.

Description: The key is re-derived with the embedded salt and compared in
constant time. Malformed stored values yield false. Hashes produced by bcrypt
are still accepted so migrated accounts keep working.
*/
func (hasher *Hasher) Verify(plaintext, stored string) bool {
	if strings.HasPrefix(stored, legacyBcryptPrefix) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	}

	saltHex, keyHex, found := strings.Cut(stored, hashSeparator)
	if !found || saltHex == "" || keyHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	storedKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	derived := hasher.derive(plaintext, salt)

	// Compare against a buffer of the derived length so the comparison always
	// runs over the same number of bytes, then fold in the length check.
	padded := make([]byte, len(derived))
	copy(padded, storedKey)

	sameBytes := subtle.ConstantTimeCompare(derived, padded)
	sameLength := subtle.ConstantTimeEq(int32(len(storedKey)), int32(len(derived)))

	return sameBytes&sameLength == 1
}

func (hasher *Hasher) derive(plaintext string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(plaintext),
		salt,
		hasher.params.Time,
		hasher.params.Memory,
		hasher.params.Threads,
		hasher.params.KeyLength,
	)
}
