package extract

import (
	"errors"
	"strings"

	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/ocr"
	"github.com/dvorakchen/number-extracter/internal/utils"
)

const (
	DefaultKeyword = "Sendungs"
	DefaultLength  = 14
)

// ErrNoTrackNumber is returned when no line of an image holds a track number
var ErrNoTrackNumber = errors.New("no track number found")

// Rule locates the track number among OCR lines.
// A line holding Keyword is followed by the number, either after a colon on the
// same line or alone on the next line.
type Rule struct {
	Keyword string
	Length  int
}

// DefaultRule returns the rule for German parcel labels ("Sendungsnummer: ...")
func DefaultRule() Rule {
	return Rule{Keyword: DefaultKeyword, Length: DefaultLength}
}

// Find returns the track number and the rectangle of the line it was read from
func (r Rule) Find(lines []ocr.Line) (string, models.Rectangle, error) {
	checkNextLine := false

	for _, line := range lines {
		s := line.Text
		if len(s) < len(r.Keyword) {
			continue
		}

		if checkNextLine {
			if utils.IsNumber(s) {
				return s, line.Rect, nil
			}
			return "", models.Rectangle{}, ErrNoTrackNumber
		}

		if !strings.Contains(s, r.Keyword) {
			continue
		}

		parts := splitNonEmpty(s, ":")
		if len(parts) != 2 {
			checkNextLine = true
			continue
		}

		rest := strings.TrimSpace(parts[1])
		if len(rest) != r.Length {
			return "", models.Rectangle{}, ErrNoTrackNumber
		}

		if !utils.IsNumber(rest) {
			checkNextLine = true
			continue
		}

		return rest, line.Rect, nil
	}

	return "", models.Rectangle{}, ErrNoTrackNumber
}

func splitNonEmpty(s, sep string) []string {
	var parts []string
	for _, p := range strings.Split(s, sep) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
