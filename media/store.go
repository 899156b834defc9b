package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Store defines the interface for saving, retrieving, and deleting stored assets
type Store interface {
	// Save stores data under the given asset type, returns the path
	// relative to the storage root
	Save(assetType AssetType, filename string, data io.Reader) (string, error)
	// Get retrieves a reader for an asset
	Get(relativePath string) (io.ReadCloser, os.FileInfo, error)
	// Delete removes an asset
	Delete(relativePath string) error
	// GetFullPath returns the absolute filesystem path for a relative asset path
	GetFullPath(relativePath string) (string, error)
	// EnsureDir makes sure a specific asset type directory exists
	EnsureDir(assetType AssetType) (string, error)
}

// LocalStorage implements the Store interface using the local filesystem
type LocalStorage struct {
	basePath  string               // absolute path to MEDIA_STORAGE_PATH
	subDirMap map[AssetType]string // maps AssetType to subdirectory name
}

// NewLocalStorage creates a new local filesystem store
func NewLocalStorage(basePath string, subDirs map[AssetType]string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBasePath, err)
	}

	for assetType, subDir := range subDirs {
		fullPath := filepath.Join(absBasePath, subDir)
		if !strings.HasPrefix(filepath.Clean(fullPath), absBasePath) {
			return nil, fmt.Errorf("invalid subdirectory configuration: '%s' (%s) resolves outside base path '%s'", subDir, assetType, absBasePath)
		}
	}

	log.Printf("media.store: Initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{
		basePath:  absBasePath,
		subDirMap: subDirs,
	}, nil
}

// EnsureDir creates the directory for an asset type and returns its full path
func (ls *LocalStorage) EnsureDir(assetType AssetType) (string, error) {
	subDir, ok := ls.subDirMap[assetType]
	if !ok {
		return "", fmt.Errorf("no subdirectory configured for asset type '%s'", assetType)
	}
	fullPath := filepath.Join(ls.basePath, subDir)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create asset directory '%s': %w", fullPath, err)
	}
	return fullPath, nil
}

// Save writes data to <base>/<subdir for assetType>/<filename> and
// returns the storage-relative path using forward slashes
func (ls *LocalStorage) Save(assetType AssetType, filename string, data io.Reader) (string, error) {
	dir, err := ls.EnsureDir(assetType)
	if err != nil {
		return "", err
	}

	cleanName := filepath.Base(filename) // strip any path components
	if cleanName == "." || cleanName == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename '%s'", filename)
	}

	fullPath := filepath.Join(dir, cleanName)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file '%s': %w", fullPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write asset file '%s': %w", fullPath, err)
	}

	rel, err := filepath.Rel(ls.basePath, fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path for '%s': %w", fullPath, err)
	}
	return filepath.ToSlash(rel), nil
}

// Get opens an asset for reading
func (ls *LocalStorage) Get(relativePath string) (io.ReadCloser, os.FileInfo, error) {
	fullPath, err := ls.GetFullPath(relativePath)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}

// Delete removes an asset; missing files are not an error
func (ls *LocalStorage) Delete(relativePath string) error {
	fullPath, err := ls.GetFullPath(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset '%s': %w", relativePath, err)
	}
	return nil
}

// GetFullPath resolves a storage-relative path, refusing escapes from
// the base directory
func (ls *LocalStorage) GetFullPath(relativePath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", errors.New("asset path escapes storage root")
	}
	fullPath := filepath.Join(ls.basePath, cleaned)
	if !strings.HasPrefix(fullPath, ls.basePath) {
		return "", errors.New("asset path escapes storage root")
	}
	return fullPath, nil
}
