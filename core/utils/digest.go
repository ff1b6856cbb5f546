package utils

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/blake3"
)

// Digest returns the hex encoded BLAKE3 hash of everything read from r.
func Digest(r io.Reader) (string, error) {
	h := blake3.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestBytes returns the hex encoded BLAKE3 hash of b.
func DigestBytes(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}
