package models

import (
	"encoding/json"
	"fmt"

	"github.com/dvorakchen/number-extracter/internal/utils"
)

// File is an uploaded image file as the user selected it
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Size returns the file size in bytes
func (f File) Size() int {
	return len(f.Data)
}

func (f File) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string `json:"name"`
		ContentType string `json:"content_type"`
		Size        int    `json:"size"`
	}{f.Name, f.ContentType, f.Size()})
}

// SelectedImage is a user-chosen image file plus its identifier
type SelectedImage struct {
	File File   `json:"file"`
	ID   string `json:"id"`
}

// NewSelectedImage tags a file with an identifier derived from its content
func NewSelectedImage(file File) SelectedImage {
	return SelectedImage{File: file, ID: utils.CalculateDataMD5(file.Data)}
}

// SelectImages tags a batch of files. Repeated content gets "-2", "-3", ...
// appended to its id so every image in the batch is addressable on its own.
func SelectImages(files []File) []SelectedImage {
	seen := make(map[string]int, len(files))
	selected := make([]SelectedImage, 0, len(files))
	for _, f := range files {
		img := NewSelectedImage(f)
		seen[img.ID]++
		if n := seen[img.ID]; n > 1 {
			img.ID = fmt.Sprintf("%s-%d", img.ID, n)
		}
		selected = append(selected, img)
	}
	return selected
}

// ImageResult aggregates the outcome of one batch
type ImageResult struct {
	Success []SuccessResp `json:"success"`
	Fail    []FailResp    `json:"fail"`
}

func NewImageResult(success []SuccessResp, fail []FailResp) ImageResult {
	return ImageResult{Success: success, Fail: fail}
}

// Rectangle is a pixel-space bounding box given as four edge offsets.
// No ordering between opposite edges is enforced.
type Rectangle struct {
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
	Left   int `json:"left" yaml:"left"`
}

func NewRectangle(top, right, bottom, left int) Rectangle {
	return Rectangle{Top: top, Right: right, Bottom: bottom, Left: left}
}

// RectangleFromPoints builds a rectangle from its top-left and bottom-right corners
func RectangleFromPoints(x1, y1, x2, y2 int) Rectangle {
	return Rectangle{Top: y1, Right: x2, Bottom: y2, Left: x1}
}

// Valid reports whether top<=bottom and left<=right
func (r Rectangle) Valid() bool {
	return r.Top <= r.Bottom && r.Left <= r.Right
}

func (r Rectangle) Width() int {
	return r.Right - r.Left
}

func (r Rectangle) Height() int {
	return r.Bottom - r.Top
}

// SuccessResp is one image whose track number was extracted
type SuccessResp struct {
	ID          string
	TrackNumber string
	File        File
	Rect        Rectangle
	hide        bool
}

func NewSuccessResp(id, trackNumber string, file File, rect Rectangle) SuccessResp {
	return SuccessResp{ID: id, TrackNumber: trackNumber, File: file, Rect: rect}
}

// Hidden reports whether the UI dismissed this entry
func (s SuccessResp) Hidden() bool {
	return s.hide
}

// WithHide returns a copy with the visibility flag set
func (s SuccessResp) WithHide(hide bool) SuccessResp {
	s.hide = hide
	return s
}

type successJSON struct {
	ID          string    `json:"id"`
	TrackNumber string    `json:"track_number"`
	File        File      `json:"file"`
	Rect        Rectangle `json:"rect"`
	Hide        bool      `json:"hide"`
}

func (s SuccessResp) MarshalJSON() ([]byte, error) {
	return json.Marshal(successJSON{s.ID, s.TrackNumber, s.File, s.Rect, s.hide})
}

func (s *SuccessResp) UnmarshalJSON(data []byte) error {
	var v struct {
		successJSON
		File struct {
			Name        string `json:"name"`
			ContentType string `json:"content_type"`
		} `json:"file"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SuccessResp{
		ID:          v.ID,
		TrackNumber: v.TrackNumber,
		File:        File{Name: v.File.Name, ContentType: v.File.ContentType},
		Rect:        v.Rect,
		hide:        v.Hide,
	}
	return nil
}

// FailResp is one image for which no track number could be extracted
type FailResp struct {
	ID   string
	File File
	hide bool
}

func NewFailResp(id string, file File) FailResp {
	return FailResp{ID: id, File: file}
}

func (f FailResp) Hidden() bool {
	return f.hide
}

func (f FailResp) WithHide(hide bool) FailResp {
	f.hide = hide
	return f
}

func (f FailResp) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		File File   `json:"file"`
		Hide bool   `json:"hide"`
	}{f.ID, f.File, f.hide})
}

// BinaryImage carries raw image bytes keyed by identifier
type BinaryImage struct {
	ID    string
	Bytes []byte
}

func NewBinaryImage(id string, bytes []byte) BinaryImage {
	return BinaryImage{ID: id, Bytes: bytes}
}

// Binary returns the selected image as raw bytes
func (s SelectedImage) Binary() BinaryImage {
	return NewBinaryImage(s.ID, s.File.Data)
}
