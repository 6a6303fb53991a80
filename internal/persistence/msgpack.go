package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Save encodes the given object using msgpack and saves it to the specified filePath.
// It creates necessary directories if they don't exist. The file is written to a temporary
// sibling first and renamed into place, so readers never observe a partial file.
func Save(filePath string, object interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := file.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := msgpack.NewEncoder(file).Encode(object); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to msgpack encode to file %s: %w", filePath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", filePath, err)
	}
	renamed = true
	return nil
}

// Load decodes a msgpack-encoded file from filePath into the provided object pointer.
// If the file does not exist, it returns os.ErrNotExist, allowing callers to handle
// fresh starts gracefully.
func Load(filePath string, objectPointer interface{}) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := msgpack.NewDecoder(file).Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to msgpack decode from file %s: %w", filePath, err)
	}
	return nil
}
