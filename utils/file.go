package utils

import (
	"path/filepath"
	"strings"

	"github.com/facette/natsort"
)

var supportedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsRasterImage checks if the filename has a common raster image extension
func IsRasterImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return supportedImageExtensions[ext]
}

// SanitizeFilename strips any path components from an uploaded filename
func SanitizeFilename(filename string) string {
	name := filepath.Base(filepath.FromSlash(filename))
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// SortFilenamesNatural orders filenames the way a human expects
// (IMG_2 before IMG_10)
func SortFilenamesNatural(filenames []string) {
	natsort.Sort(filenames)
}
