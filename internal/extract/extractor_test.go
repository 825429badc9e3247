package extract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/ocr"
	"github.com/stretchr/testify/require"
)

// fakeRecognizer answers with canned lines keyed by image id
type fakeRecognizer struct {
	mu     sync.Mutex
	lines  map[string][]ocr.Line
	delays map[string]time.Duration
	calls  int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, img models.BinaryImage) ([]ocr.Line, error) {
	f.mu.Lock()
	f.calls++
	delay := f.delays[img.ID]
	lines, ok := f.lines[img.ID]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if !ok {
		return nil, errors.New("provider unavailable")
	}
	return lines, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func selected(id string, data []byte) models.SelectedImage {
	return models.SelectedImage{File: models.File{Name: id + ".png", ContentType: "image/png", Data: data}, ID: id}
}

func TestExtractPreservesOrder(t *testing.T) {
	data := pngBytes(t)
	rec := &fakeRecognizer{
		lines: map[string][]ocr.Line{
			"a": {line("Sendungsnummer: 11111111111111", 0)},
			"b": {line("Sendungsnummer: 22222222222222", 0)},
			"c": {line("nothing useful here", 0)},
			"d": {line("Sendungsnummer: 44444444444444", 0)},
		},
		delays: map[string]time.Duration{
			"a": 30 * time.Millisecond,
			"b": 10 * time.Millisecond,
		},
	}

	ex := NewExtractor(rec, DefaultRule(), 4)
	res := ex.Extract(context.Background(), []models.SelectedImage{
		selected("a", data),
		selected("b", data),
		selected("c", data),
		selected("d", data),
		selected("e", data),
	})

	require.Len(t, res.Success, 3)
	require.Equal(t, "a", res.Success[0].ID)
	require.Equal(t, "11111111111111", res.Success[0].TrackNumber)
	require.Equal(t, "b", res.Success[1].ID)
	require.Equal(t, "d", res.Success[2].ID)
	require.False(t, res.Success[0].Hidden())

	require.Len(t, res.Fail, 2)
	require.Equal(t, "c", res.Fail[0].ID)
	require.Equal(t, "e", res.Fail[1].ID)
}

func TestExtractUndecodableImageFails(t *testing.T) {
	rec := &fakeRecognizer{lines: map[string][]ocr.Line{
		"x": {line("Sendungsnummer: 11111111111111", 0)},
	}}

	res := NewExtractor(rec, DefaultRule(), 1).Extract(context.Background(), []models.SelectedImage{
		selected("x", []byte("not an image")),
	})

	require.Empty(t, res.Success)
	require.Len(t, res.Fail, 1)
	require.Equal(t, 0, rec.calls)
}

func TestExtractCancelledContext(t *testing.T) {
	rec := &fakeRecognizer{lines: map[string][]ocr.Line{
		"a": {line("Sendungsnummer: 11111111111111", 0)},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewExtractor(rec, DefaultRule(), 2).Extract(ctx, []models.SelectedImage{selected("a", pngBytes(t))})
	require.Empty(t, res.Success)
	require.Len(t, res.Fail, 1)
}

func TestExtractEmptyBatch(t *testing.T) {
	res := NewExtractor(&fakeRecognizer{}, DefaultRule(), 0).Extract(context.Background(), nil)
	require.NotNil(t, res.Success)
	require.NotNil(t, res.Fail)
	require.Empty(t, res.Success)
	require.Empty(t, res.Fail)
}

func TestExtractOneSeparatesNoMatchFromFailure(t *testing.T) {
	data := pngBytes(t)
	rec := &fakeRecognizer{lines: map[string][]ocr.Line{
		"hit":  {line("Sendungsnummer: 12345678901234", 0)},
		"miss": {line("Absender: Musterstrasse 1", 0)},
	}}
	e := NewExtractor(rec, DefaultRule(), 1)

	number, _, err := e.ExtractOne(context.Background(), selected("hit", data))
	require.NoError(t, err)
	require.Equal(t, "12345678901234", number)

	_, _, err = e.ExtractOne(context.Background(), selected("miss", data))
	require.ErrorIs(t, err, ErrNoTrackNumber)

	_, _, err = e.ExtractOne(context.Background(), selected("down", data))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoTrackNumber)
}
