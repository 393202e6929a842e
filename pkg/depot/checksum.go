package depot

import (
	"encoding/hex"
	"fmt"
	"io"

	sha256 "github.com/minio/sha256-simd"
)

// Checksum computes the hex-encoded SHA-256 digest of r. This is the
// checksum format the depot expects on package upload and stores alongside
// each package.
func Checksum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("computing checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
