package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultOriginalsSubDir  = "originals"
	DefaultWatermarksSubDir = "watermarked"
	DefaultThumbnailsSubDir = "thumbnails"
	DefaultArchivesSubDir   = "order_archives"
)

const (
	defaultUploadQueueSize    = 100
	defaultNumUploadWorkers   = 4
	defaultThumbnailMaxSize   = 400
	defaultWatermarkMaxSize   = 1600
	defaultFullAlbumMinPhotos = 11
	defaultJWTExpirationHours = 24
)

type Config struct {
	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for stored assets
	OriginalsPath    string // full-calculated path for originals
	WatermarksPath   string // full-calculated path for watermarked renditions
	ThumbnailsPath   string // full-calculated path for thumbnails
	ArchivesPath     string // full-calculated path for order archives

	// watermark overlay image; empty disables the overlay (public
	// renditions are still downscaled)
	WatermarkImagePath string

	// image processing settings
	ThumbnailMaxSize int
	WatermarkMaxSize int

	// upload worker settings
	UploadQueueSize  int
	NumUploadWorkers int

	// pricing settings
	FullAlbumMinPhotos int

	// auth settings
	JWTSecret          string
	JWTExpirationHours int

	// allowed browser origin for CORS
	FrontendOrigin string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "fotospatagonia.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	originalsSubDir := getEnvOrDefault("ORIGINALS_SUBDIR", DefaultOriginalsSubDir)
	watermarksSubDir := getEnvOrDefault("WATERMARKS_SUBDIR", DefaultWatermarksSubDir)
	thumbSubDir := getEnvOrDefault("THUMBNAILS_SUBDIR", DefaultThumbnailsSubDir)
	archiveSubDir := getEnvOrDefault("ARCHIVES_SUBDIR", DefaultArchivesSubDir)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg := Config{
		DatabasePath:       dbPath,
		MediaStoragePath:   absMediaStorage,
		OriginalsPath:      filepath.Join(absMediaStorage, originalsSubDir),
		WatermarksPath:     filepath.Join(absMediaStorage, watermarksSubDir),
		ThumbnailsPath:     filepath.Join(absMediaStorage, thumbSubDir),
		ArchivesPath:       filepath.Join(absMediaStorage, archiveSubDir),
		WatermarkImagePath: getEnvOrDefault("WATERMARK_IMAGE_PATH", ""),
		ThumbnailMaxSize:   getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize),
		WatermarkMaxSize:   getEnvIntOrDefault("WATERMARK_MAX_SIZE", defaultWatermarkMaxSize),
		UploadQueueSize:    getEnvIntOrDefault("UPLOAD_QUEUE_SIZE", defaultUploadQueueSize),
		NumUploadWorkers:   getEnvIntOrDefault("NUM_UPLOAD_WORKERS", defaultNumUploadWorkers),
		FullAlbumMinPhotos: getEnvIntOrDefault("FULL_ALBUM_MIN_PHOTOS", defaultFullAlbumMinPhotos),
		JWTSecret:          jwtSecret,
		JWTExpirationHours: getEnvIntOrDefault("JWT_EXPIRATION_HOURS", defaultJWTExpirationHours),
		FrontendOrigin:     getEnvOrDefault("FRONTEND_ORIGIN", "http://localhost:3000"),
	}

	return cfg, nil
}
