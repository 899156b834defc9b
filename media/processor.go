package media

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Processor derives the public renditions (watermarked copy, thumbnail)
// of an uploaded original.
type Processor struct {
	store            Store
	watermarkOverlay image.Image // nil when no overlay image is configured
	watermarkMaxSize int
	thumbnailMaxSize int
}

// NewProcessor loads the optional watermark overlay and wires the store.
// An unreadable overlay disables the overlay rather than failing startup.
func NewProcessor(store Store, watermarkImagePath string, watermarkMaxSize, thumbnailMaxSize int) *Processor {
	var overlay image.Image
	if watermarkImagePath != "" {
		img, err := imaging.Open(watermarkImagePath)
		if err != nil {
			log.Printf("media.processor: could not load watermark overlay %s: %v. Continuing without overlay.", watermarkImagePath, err)
		} else {
			overlay = img
		}
	}
	return &Processor{
		store:            store,
		watermarkOverlay: overlay,
		watermarkMaxSize: watermarkMaxSize,
		thumbnailMaxSize: thumbnailMaxSize,
	}
}

// GenerateWatermarked produces the public watermarked rendition of the
// original and stores it under a UUID filename. Returns the
// storage-relative path.
func (p *Processor) GenerateWatermarked(originalPath string) (string, error) {
	img, err := imaging.Open(originalPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", originalPath, err)
	}

	rendition := imaging.Fit(img, p.watermarkMaxSize, p.watermarkMaxSize, imaging.Lanczos)

	if p.watermarkOverlay != nil {
		bounds := rendition.Bounds()
		overlay := imaging.Fit(p.watermarkOverlay, bounds.Dx(), bounds.Dy(), imaging.Lanczos)
		ob := overlay.Bounds()
		offset := image.Pt(
			(bounds.Dx()-ob.Dx())/2,
			(bounds.Dy()-ob.Dy())/2,
		)
		rendition = imaging.Overlay(rendition, overlay, offset, 0.45)
	}

	return p.saveJPEG(AssetTypeWatermark, rendition, 85)
}

// GenerateThumbnail produces the gallery thumbnail of the original and
// stores it under a UUID filename. Returns the storage-relative path.
func (p *Processor) GenerateThumbnail(originalPath string) (string, error) {
	img, err := imaging.Open(originalPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", originalPath, err)
	}

	thumb := imaging.Fit(img, p.thumbnailMaxSize, p.thumbnailMaxSize, imaging.Lanczos)
	return p.saveJPEG(AssetTypeThumbnail, thumb, 80)
}

// saveJPEG writes the rendition to a temp file and hands it to the store
func (p *Processor) saveJPEG(assetType AssetType, img image.Image, quality int) (string, error) {
	assetUUID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID for %s asset: %w", assetType, err)
	}
	filename := assetUUID.String() + ".jpg"

	tmp, err := os.CreateTemp("", "fotospatagonia-*.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s asset: %w", assetType, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := imaging.Save(img, tmpPath, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("failed to encode %s asset: %w", assetType, err)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to reopen encoded %s asset: %w", assetType, err)
	}
	defer f.Close()

	relPath, err := p.store.Save(assetType, filename, f)
	if err != nil {
		return "", fmt.Errorf("failed to store %s asset: %w", assetType, err)
	}
	return relPath, nil
}
