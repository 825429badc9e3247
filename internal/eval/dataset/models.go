package dataset

import "path/filepath"

// LabeledImage is one dataset record: a label photo and the track number printed on it
type LabeledImage struct {
	ID          string `json:"id" parquet:"id"`
	ImagePath   string `json:"image_path" parquet:"image_path"`
	TrackNumber string `json:"track_number" parquet:"track_number"` // empty when the label has none
}

// ResolveImagePath returns the image path, joined to baseDir when relative
func (r *LabeledImage) ResolveImagePath(baseDir string) string {
	if filepath.IsAbs(r.ImagePath) || baseDir == "" {
		return r.ImagePath
	}
	return filepath.Join(baseDir, r.ImagePath)
}

// HasTrackNumber reports whether a track number is expected for this image
func (r *LabeledImage) HasTrackNumber() bool {
	return r.TrackNumber != ""
}
