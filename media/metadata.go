package media

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// helper to safely get and convert a rational tag (like Aperture, FocalLength)
func getRational(exifData *exif.Exif, tagName exif.FieldName) *float64 {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		// sometimes stored as Int instead
		valInt, errInt := tag.Int(0)
		if errInt == nil {
			fVal := float64(valInt)
			return &fVal
		}
		return nil
	}
	val := float64(num) / float64(den)
	return &val
}

// helper to safely get and convert an integer tag (like ISO)
func getInt(exifData *exif.Exif, tagName exif.FieldName) *int {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	val, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &val
}

// helper to safely get a string tag
func getString(exifData *exif.Exif, tagName exif.FieldName) *string {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	val, err := tag.StringVal()
	if err != nil {
		return nil
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	return &val
}

// ExtractMetadata reads image dimensions and EXIF fields from a file.
// Missing EXIF data is not an error; whatever could be read is returned.
func ExtractMetadata(imagePath string) (*Metadata, error) {
	meta := &Metadata{}

	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s for metadata: %w", imagePath, err)
	}
	defer f.Close()

	if cfg, _, err := image.DecodeConfig(f); err == nil {
		w, h := cfg.Width, cfg.Height
		meta.Width = &w
		meta.Height = &h
	}

	if _, err := f.Seek(0, 0); err != nil {
		return meta, nil
	}

	exifData, err := exif.Decode(f)
	if err != nil {
		// no EXIF block, dimensions are all we have
		return meta, nil
	}

	meta.Aperture = getRational(exifData, exif.FNumber)
	meta.FocalLength = getRational(exifData, exif.FocalLength)
	meta.ISO = getInt(exifData, exif.ISOSpeedRatings)
	meta.CameraMake = getString(exifData, exif.Make)
	meta.CameraModel = getString(exifData, exif.Model)

	if tag, err := exifData.Get(exif.ExposureTime); err == nil && tag != nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			shutter := fmt.Sprintf("%d/%d", num, den)
			meta.ShutterSpeed = &shutter
		}
	}

	if taken, err := exifData.DateTime(); err == nil {
		ts := taken.Unix()
		meta.TakenAt = &ts
	}

	return meta, nil
}
