package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	rowHeight   = 30
	columnWidth = 30
)

// WriteXLSX writes one row per success: the label image fitted into column A
// and the track number in column B.
func WriteXLSX(w io.Writer, success []models.SuccessResp) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := f.SetColWidth(sheet, "A", "B", columnWidth); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, s := range success {
		row := i + 1
		if err := f.SetRowHeight(sheet, row, rowHeight); err != nil {
			return fmt.Errorf("failed to set row height: %w", err)
		}

		imageCell, _ := excelize.CoordinatesToCellName(1, row)
		numberCell, _ := excelize.CoordinatesToCellName(2, row)

		if ext, ok := pictureExtension(s.File.Data); ok {
			err := f.AddPictureFromBytes(sheet, imageCell, &excelize.Picture{
				Extension: ext,
				File:      s.File.Data,
				Format:    &excelize.GraphicOptions{AutoFit: true, LockAspectRatio: true},
			})
			if err != nil {
				slog.Warn("Unable to embed image", "id", s.ID, "err", err)
			}
		}

		if err := f.SetCellStr(sheet, numberCell, s.TrackNumber); err != nil {
			return fmt.Errorf("failed to write track number: %w", err)
		}
		if err := f.SetCellStyle(sheet, numberCell, numberCell, center); err != nil {
			return fmt.Errorf("failed to style track number: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func pictureExtension(data []byte) (string, bool) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	return "." + format, true
}
