package loader

import (
	"errors"
	"io/fs"
)

func loadFromFS(files fs.FS, name string) ([]byte, error) {
	if files == nil {
		return nil, errors.New("fs sources need WithFS")
	}
	if name == "" {
		return nil, errors.New("fs path is required")
	}
	return fs.ReadFile(files, name)
}
