package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/dvorakchen/number-extracter/internal/models"
)

type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatYAML    Format = "yaml"
	FormatParquet Format = "parquet"
)

// Row is the flat export record of one extracted track number
type Row struct {
	ID          string `yaml:"id" parquet:"id"`
	TrackNumber string `yaml:"track_number" parquet:"track_number"`
	FileName    string `yaml:"file_name" parquet:"file_name"`
	Top         int    `yaml:"top" parquet:"top"`
	Right       int    `yaml:"right" parquet:"right"`
	Bottom      int    `yaml:"bottom" parquet:"bottom"`
	Left        int    `yaml:"left" parquet:"left"`
}

// ParseFormat accepts a format name or a file name with a known extension
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		s = s[idx+1:]
	}
	switch s {
	case "xlsx":
		return FormatXLSX, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: xlsx, yaml, parquet)", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// Visible returns the successes the user has not dismissed
func Visible(result models.ImageResult) []models.SuccessResp {
	visible := make([]models.SuccessResp, 0, len(result.Success))
	for _, s := range result.Success {
		if !s.Hidden() {
			visible = append(visible, s)
		}
	}
	return visible
}

func toRows(success []models.SuccessResp) []Row {
	rows := make([]Row, 0, len(success))
	for _, s := range success {
		rows = append(rows, Row{
			ID:          s.ID,
			TrackNumber: s.TrackNumber,
			FileName:    s.File.Name,
			Top:         s.Rect.Top,
			Right:       s.Rect.Right,
			Bottom:      s.Rect.Bottom,
			Left:        s.Rect.Left,
		})
	}
	return rows
}

// Write exports the visible successes of result
func Write(w io.Writer, format Format, result models.ImageResult) error {
	success := Visible(result)
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, success)
	case FormatYAML:
		return WriteYAML(w, success)
	case FormatParquet:
		return WriteParquet(w, success)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
