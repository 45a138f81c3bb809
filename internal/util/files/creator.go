package files_utils

import (
	"fmt"
	"os"
	"path/filepath"
)

const directoryPermissions = 0755

func EnsureDirectories(directories []string) error {
	for _, directory := range directories {
		if err := os.MkdirAll(directory, directoryPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	return nil
}

// EnsureParentDirectory creates the directory that will hold filePath.
func EnsureParentDirectory(filePath string) error {
	return EnsureDirectories([]string{filepath.Dir(filePath)})
}
