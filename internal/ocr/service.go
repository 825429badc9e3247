package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dvorakchen/number-extracter/internal/gemini"
	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/ollama"
	"github.com/dvorakchen/number-extracter/internal/openai"
	"github.com/dvorakchen/number-extracter/internal/providers"
)

// Line is one recognized text line and its bounding box
type Line struct {
	Text string
	Rect models.Rectangle
}

// Recognizer turns an image into text lines in reading order
type Recognizer interface {
	Recognize(ctx context.Context, image models.BinaryImage) ([]Line, error)
}

// Service handles OCR extraction from images through a vision provider
type Service struct {
	Provider string
	Model    string
	backend  providers.Provider
}

// NewService creates a new OCR service. Empty provider and model fall back to the environment.
func NewService(provider, model string) (*Service, error) {
	if provider == "" {
		provider = os.Getenv("OCR_PROVIDER")
		if provider == "" {
			provider = "ollama"
		}
	}

	if model == "" {
		model = getDefaultModel(provider)
	}

	var backend providers.Provider
	switch provider {
	case "openai":
		backend = openai.New()
	case "ollama":
		backend = ollama.New()
	case "gemini":
		backend = gemini.New()
	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", provider)
	}

	return &Service{Provider: provider, Model: model, backend: backend}, nil
}

// NewServiceWithBackend creates an OCR service around an existing provider
func NewServiceWithBackend(backend providers.Provider, provider, model string) *Service {
	return &Service{Provider: provider, Model: model, backend: backend}
}

func getDefaultModel(provider string) string {
	switch provider {
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-1.5-flash"
		}
		return model
	default:
		return ""
	}
}

func buildOCRPrompt() string {
	return `You are performing OCR (Optical Character Recognition) on a photo of a parcel shipping label.

Your task is to extract ALL visible text lines from the image exactly as they appear, together with the pixel bounding box of each line.

INSTRUCTIONS:
1. Read the image carefully from top to bottom, left to right
2. Transcribe every line of visible text, one entry per line
3. Preserve capitalization, punctuation, colons and digits exactly
4. Do not merge separate lines and do not add interpretation or commentary
5. The bounding box is [x1, y1, x2, y2]: top-left and bottom-right corners in image pixels

OUTPUT FORMAT:
Respond with JSON only, in this shape:
{"lines": [{"text": "Sendungsnummer: 12345678901234", "box": [40, 310, 620, 352]}]}`
}

// Recognize extracts text lines from an image
func (s *Service) Recognize(ctx context.Context, image models.BinaryImage) ([]Line, error) {
	raw, err := s.backend.ExtractText(ctx, providers.Config{
		Model:       s.Model,
		Temperature: 0.0,
		Prompt:      buildOCRPrompt(),
		Image:       image.Bytes,
		MIMEType:    http.DetectContentType(image.Bytes),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract text with %s: %w", s.Provider, err)
	}

	lines, err := ParseLines(raw)
	if err != nil {
		return nil, err
	}

	slog.Debug("Extracted OCR lines", "provider", s.Provider, "model", s.Model, "id", image.ID, "lines", len(lines))
	return lines, nil
}

// ParseLines decodes a provider response into text lines.
// Markdown code fences around the JSON are tolerated.
func ParseLines(raw string) ([]Line, error) {
	raw = stripCodeFence(raw)

	var payload struct {
		Lines []struct {
			Text string `json:"text"`
			Box  []int  `json:"box"`
		} `json:"lines"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode OCR response: %w", err)
	}

	lines := make([]Line, 0, len(payload.Lines))
	for _, l := range payload.Lines {
		line := Line{Text: strings.TrimSpace(l.Text)}
		if len(l.Box) == 4 {
			line.Rect = models.RectangleFromPoints(l.Box[0], l.Box[1], l.Box[2], l.Box[3])
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
