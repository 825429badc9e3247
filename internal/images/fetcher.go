package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dvorakchen/number-extracter/internal/models"
)

// MaxImageSize caps a single image at 10MB
const MaxImageSize = 10 * 1024 * 1024

var ErrTooLarge = errors.New("image too large (max 10MB)")

var supportedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Fetcher retrieves label images from URLs and the local filesystem
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchURL downloads an image
func (f *Fetcher) FetchURL(ctx context.Context, imageURL string) (models.File, error) {
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return models.File{}, fmt.Errorf("invalid image url: %s", imageURL)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return models.File{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return models.File{}, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.File{}, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	data, err := ReadLimited(resp.Body)
	if err != nil {
		return models.File{}, err
	}

	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		name = "image.jpg"
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	slog.Info("Downloaded image", "url", imageURL, "bytes", len(data))
	return models.File{Name: name, ContentType: contentType, Data: data}, nil
}

// ReadLimited reads at most MaxImageSize bytes and fails if there is more
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// LoadPaths reads image files. Directories are expanded to the supported image
// files they contain, non-recursively, in name order.
func LoadPaths(paths []string) ([]models.File, error) {
	var files []models.File
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}

		if !info.IsDir() {
			file, err := loadFile(p)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !IsSupported(entry.Name()) {
				if !entry.IsDir() {
					slog.Warn("Skipping unsupported file", "file", entry.Name())
				}
				continue
			}
			file, err := loadFile(filepath.Join(p, entry.Name()))
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}
	return files, nil
}

// IsSupported reports whether the file name has a supported image extension
func IsSupported(name string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(name))]
}

func loadFile(p string) (models.File, error) {
	fh, err := os.Open(p)
	if err != nil {
		return models.File{}, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer fh.Close()

	data, err := ReadLimited(fh)
	if err != nil {
		return models.File{}, fmt.Errorf("%s: %w", p, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(p)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return models.File{Name: filepath.Base(p), ContentType: contentType, Data: data}, nil
}
