// Package digest provides streaming SHA-256 helpers shared by the fetcher
// and the verify command.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.trai.ch/zerr"
)

// Reader consumes r to EOF and returns the hex SHA-256 of its contents.
func Reader(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// File returns the hex SHA-256 of the file at path. The file is streamed,
// never loaded whole.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", domain.WithField(domain.ErrVerifyFailed, "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	sum, err := Reader(f)
	if err != nil {
		return "", domain.WithField(domain.ErrVerifyFailed, "path", path)
	}
	return sum, nil
}

// VerifyFile compares the file's digest against expected and returns
// ErrChecksumMismatch with both values attached when they differ.
func VerifyFile(path, expected string) error {
	actual, err := File(path)
	if err != nil {
		return err
	}
	if actual != expected {
		msg := "expected " + expected + ", got " + actual
		err := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, msg), "path", path)
		err = zerr.With(err, "expected", expected)
		return zerr.With(err, "actual", actual)
	}
	return nil
}
