package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// CreateOrderArchive creates a ZIP of the given original files for a
// customer download.
// files maps the entry name inside the archive to the absolute source path.
// archiveSaveDir is the full path where the ZIP should be saved.
// Returns: archive filename (relative to archiveSaveDir), size in bytes, error.
func CreateOrderArchive(files map[string]string, archiveSaveDir string) (string, int64, error) {
	if len(files) == 0 {
		return "", 0, fmt.Errorf("no files to archive")
	}

	if err := os.MkdirAll(archiveSaveDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create zip save directory %s: %w", archiveSaveDir, err)
	}

	timestamp := time.Now().Unix()
	archiveUUID, _ := uuid.NewRandom()
	zipFilename := fmt.Sprintf("order_%d_%s.zip", timestamp, archiveUUID.String()[:8])
	zipFilePath := filepath.Join(archiveSaveDir, zipFilename)

	zipFile, err := os.Create(zipFilePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create zip file %s: %w", zipFilePath, err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)

	added := 0
	for entryName, sourcePath := range files {
		src, err := os.Open(sourcePath)
		if err != nil {
			log.Printf("zipper: Failed to open file %s for zipping: %v. Skipping.", sourcePath, err)
			continue
		}

		writer, err := zipWriter.Create(entryName)
		if err != nil {
			src.Close()
			log.Printf("zipper: Failed to create entry in zip for %s: %v. Skipping.", entryName, err)
			continue
		}

		_, err = io.Copy(writer, src)
		src.Close()
		if err != nil {
			log.Printf("zipper: Failed to write file %s to zip: %v. Skipping.", entryName, err)
			continue
		}
		added++
	}

	if added == 0 {
		zipWriter.Close()
		zipFile.Close()
		os.Remove(zipFilePath)
		return "", 0, fmt.Errorf("none of the %d requested files could be archived", len(files))
	}

	if err := zipWriter.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to finalize zip writer for %s: %w", zipFilePath, err)
	}

	zipInfo, err := os.Stat(zipFilePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat created zip file %s: %w", zipFilePath, err)
	}

	log.Printf("Successfully created order zip: %s (Size: %d bytes)", zipFilePath, zipInfo.Size())
	return zipFilename, zipInfo.Size(), nil
}
