package installer

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/stencil-labs/stencil/internal/npm"
)

// VerifyIntegrity checks the archive against dist.integrity (a Subresource
// Integrity string such as "sha512-<base64>") or, when absent, against the
// hex sha1 in dist.shasum. Archives with neither are accepted.
func VerifyIntegrity(archivePath string, dist npm.Dist) error {
	switch {
	case dist.Integrity != "":
		algo, expected, ok := strings.Cut(dist.Integrity, "-")
		if !ok {
			return fmt.Errorf("malformed integrity %q", dist.Integrity)
		}
		h, err := newHash(algo)
		if err != nil {
			return err
		}
		sum, err := hashFile(archivePath, h)
		if err != nil {
			return err
		}
		if actual := base64.StdEncoding.EncodeToString(sum); actual != expected {
			return fmt.Errorf("integrity mismatch: expected %s-%s, got %s-%s", algo, expected, algo, actual)
		}
		return nil
	case dist.Shasum != "":
		sum, err := hashFile(archivePath, sha1.New())
		if err != nil {
			return err
		}
		if actual := hex.EncodeToString(sum); actual != strings.ToLower(dist.Shasum) {
			return fmt.Errorf("checksum mismatch: expected %s, got %s", dist.Shasum, actual)
		}
		return nil
	default:
		return nil
	}
}

func newHash(algo string) (hash.Hash, error) {
	switch algo {
	case "sha512":
		return sha512.New(), nil
	case "sha384":
		return sha512.New384(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha1":
		return sha1.New(), nil
	default:
		return nil, fmt.Errorf("unsupported integrity algorithm %q", algo)
	}
}

func hashFile(path string, h hash.Hash) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive for checksum: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("computing checksum: %w", err)
	}
	return h.Sum(nil), nil
}
