package export

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func sampleResult(t *testing.T) models.ImageResult {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	file := models.File{Name: "label.png", ContentType: "image/png", Data: buf.Bytes()}

	return models.NewImageResult(
		[]models.SuccessResp{
			models.NewSuccessResp("a", "11111111111111", file, models.NewRectangle(1, 2, 3, 4)),
			models.NewSuccessResp("b", "22222222222222", file, models.Rectangle{}).WithHide(true),
			models.NewSuccessResp("c", "33333333333333", models.File{Name: "broken.jpg", Data: []byte("x")}, models.Rectangle{}),
		},
		[]models.FailResp{models.NewFailResp("d", file)},
	)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"xlsx":             FormatXLSX,
		"out/numbers.XLSX": FormatXLSX,
		"yml":              FormatYAML,
		"numbers.yaml":     FormatYAML,
		"dump.parquet":     FormatParquet,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	require.Error(t, err)
}

func TestVisibleSkipsHidden(t *testing.T) {
	visible := Visible(sampleResult(t))
	require.Len(t, visible, 2)
	require.Equal(t, "a", visible[0].ID)
	require.Equal(t, "c", visible[1].ID)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleResult(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	v, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	require.Equal(t, "11111111111111", v)

	v, err = f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "33333333333333", v)

	v, err = f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	require.Empty(t, v)

	pics, err := f.GetPictures(sheet, "A1")
	require.NoError(t, err)
	require.Len(t, pics, 1)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleResult(t)))

	var doc map[string][]Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc["track_numbers"], 2)
	require.Equal(t, Row{ID: "a", TrackNumber: "11111111111111", FileName: "label.png", Top: 1, Right: 2, Bottom: 3, Left: 4}, doc["track_numbers"][0])
}

func TestWriteParquet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatParquet, sampleResult(t)))

	rows, err := parquet.Read[Row](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "c", rows[1].ID)
	require.Equal(t, "broken.jpg", rows[1].FileName)
}
