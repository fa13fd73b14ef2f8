// Package hash defines the content-hashing contract used for duplicate
// detection, and ships one default implementation so the FFI boundary and
// CLI are runnable end to end.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/nexusfs/nexuscore"
)

// Hasher is the content-hashing contract used for duplicate pre-filtering.
type Hasher interface {
	// QuickHash returns a non-cryptographic 64-bit digest of path's content.
	QuickHash(path string) (uint64, error)
	// SHA256 returns a hex-encoded cryptographic digest of path's content.
	SHA256(path string) (string, error)
	// FilesEqual compares a and b by size, then quick hash, then SHA-256,
	// short-circuiting on the first mismatch.
	FilesEqual(a, b string) (bool, error)
}

// Default is the Hasher shipped with nexuscore: xxHash for the quick stage,
// SHA-256 for the confirming stage.
type Default struct{}

func (Default) QuickHash(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nexuscore.WrapError(nexuscore.KindIO, "open "+path, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, nexuscore.WrapError(nexuscore.KindIO, "hash "+path, err)
	}
	return h.Sum64(), nil
}

func (Default) SHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nexuscore.WrapError(nexuscore.KindIO, "open "+path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", nexuscore.WrapError(nexuscore.KindIO, "hash "+path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FilesEqual implements the three-way compare: size, then quick hash, then
// SHA-256, returning false as soon as any stage disagrees.
func (d Default) FilesEqual(a, b string) (bool, error) {
	sa, err := os.Stat(a)
	if err != nil {
		return false, nexuscore.WrapError(nexuscore.KindIO, "stat "+a, err)
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false, nexuscore.WrapError(nexuscore.KindIO, "stat "+b, err)
	}
	if sa.Size() != sb.Size() {
		return false, nil
	}

	qa, err := d.QuickHash(a)
	if err != nil {
		return false, err
	}
	qb, err := d.QuickHash(b)
	if err != nil {
		return false, err
	}
	if qa != qb {
		return false, nil
	}

	ha, err := d.SHA256(a)
	if err != nil {
		return false, err
	}
	hb, err := d.SHA256(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
