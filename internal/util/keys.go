package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// maxKeyLen bounds storage keys; several stores reject or truncate beyond this.
const maxKeyLen = 200

// reserved characters many stores treat specially; scrubbed to underscores.
const reserved = "{}()/\\@: "

// StoreKey normalizes a caller key into a safe storage key under ns.
// Reserved characters are replaced and over-long results fall back to a
// digest so every caller string maps to a valid provider key.
func StoreKey(ns, key string) string {
	k := ns + ":" + Sanitize(key)
	if len(k) > maxKeyLen {
		sum := sha256.Sum256([]byte(key))
		k = ns + ":" + hex.EncodeToString(sum[:])
	}
	return k
}

// Sanitize replaces reserved characters with underscores.
func Sanitize(key string) string {
	if !strings.ContainsAny(key, reserved) {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if r < 0x80 && strings.ContainsRune(reserved, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
