package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/providers"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	response string
	err      error
	got      providers.Config
}

func (f *fakeProvider) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	f.got = config
	return f.response, f.err
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Line
	}{
		{
			name: "plain json",
			raw:  `{"lines":[{"text":"Sendungsnummer:","box":[10,20,110,45]},{"text":" 12345678901234 ","box":[10,50,200,80]}]}`,
			want: []Line{
				{Text: "Sendungsnummer:", Rect: models.NewRectangle(20, 110, 45, 10)},
				{Text: "12345678901234", Rect: models.NewRectangle(50, 200, 80, 10)},
			},
		},
		{
			name: "code fence",
			raw:  "```json\n{\"lines\":[{\"text\":\"DHL\",\"box\":[1,2,3,4]}]}\n```",
			want: []Line{{Text: "DHL", Rect: models.NewRectangle(2, 3, 4, 1)}},
		},
		{
			name: "missing box",
			raw:  `{"lines":[{"text":"no box"}]}`,
			want: []Line{{Text: "no box"}},
		},
		{
			name: "empty",
			raw:  `{"lines":[]}`,
			want: []Line{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLines(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseLinesInvalid(t *testing.T) {
	_, err := ParseLines("I could not read the label")
	require.Error(t, err)
}

func TestRecognizeUsesBackend(t *testing.T) {
	fake := &fakeProvider{response: `{"lines":[{"text":"hello","box":[0,0,5,5]}]}`}
	svc := NewServiceWithBackend(fake, "fake", "fake-model")

	png := []byte("\x89PNG\r\n\x1a\n0000")
	lines, err := svc.Recognize(context.Background(), models.NewBinaryImage("id", png))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "fake-model", fake.got.Model)
	require.Equal(t, "image/png", fake.got.MIMEType)
	require.Equal(t, png, fake.got.Image)
}

func TestRecognizeBackendError(t *testing.T) {
	svc := NewServiceWithBackend(&fakeProvider{err: errors.New("boom")}, "fake", "m")
	_, err := svc.Recognize(context.Background(), models.NewBinaryImage("id", nil))
	require.ErrorContains(t, err, "boom")
}

func TestNewServiceDefaults(t *testing.T) {
	t.Setenv("OCR_PROVIDER", "")
	t.Setenv("OLLAMA_MODEL", "")

	svc, err := NewService("", "")
	require.NoError(t, err)
	require.Equal(t, "ollama", svc.Provider)
	require.Equal(t, "mistral-small3.2:24b", svc.Model)

	t.Setenv("GEMINI_MODEL", "gemini-test")
	svc, err = NewService("gemini", "")
	require.NoError(t, err)
	require.Equal(t, "gemini-test", svc.Model)

	_, err = NewService("tesseract", "")
	require.Error(t, err)
}
