package scan

import (
	"io"
	"os"

	"go.uber.org/zap"
	"lukechampine.com/blake3"
)

// Digest returns the blake3-256 digest of the file at path. Removed files
// have their digest journaled before deletion so a sweep can be audited
// after the fact.
func Digest(logger *zap.Logger, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn(err.Error())
		}
	}()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}
