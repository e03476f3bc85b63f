package loader

import (
	"errors"
	"os"
	"path/filepath"
)

func loadFile(path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}
