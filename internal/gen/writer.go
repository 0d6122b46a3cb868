package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory, creating
// it when missing. Each file is written to a temporary file in the same
// directory and renamed over the target, so a failed run never leaves a
// partially written file behind.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		if err := writeAtomic(filepath.Join(outputDir, file.Filename), file.Content); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// unformattedName is the sidecar name for source that failed to format.
// It must not end in .go, or the broken source would join the package.
func unformattedName(filename string) string {
	return filename + ".unformatted"
}

// writeUnformatted stores src next to the intended output. It is a no-op
// without an output directory.
func writeUnformatted(outputDir, filename string, src []byte) error {
	if outputDir == "" {
		return nil
	}

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return err
	}

	return writeAtomic(filepath.Join(outputDir, unformattedName(filename)), src)
}

func writeAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
