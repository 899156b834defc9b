package media

// AssetType classifies stored renditions of a photo.
type AssetType string

const (
	AssetTypeOriginal  AssetType = "original"
	AssetTypeWatermark AssetType = "watermark"
	AssetTypeThumbnail AssetType = "thumbnail"
	AssetTypeArchive   AssetType = "archive"
	AssetTypeUnknown   AssetType = "unknown"
)

// Metadata contains EXIF and dimension information extracted from an
// uploaded original.
type Metadata struct {
	Width        *int     `json:"width,omitempty"`
	Height       *int     `json:"height,omitempty"`
	Aperture     *float64 `json:"aperture,omitempty"`
	ShutterSpeed *string  `json:"shutter_speed,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	FocalLength  *float64 `json:"focal_length,omitempty"`
	CameraMake   *string  `json:"camera_make,omitempty"`
	CameraModel  *string  `json:"camera_model,omitempty"`
	TakenAt      *int64   `json:"taken_at,omitempty"`
}
