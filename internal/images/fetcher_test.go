package images

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpegdata"))
	}))
	defer srv.Close()

	f := NewFetcher()
	file, err := f.FetchURL(context.Background(), srv.URL+"/labels/label1.jpg")
	require.NoError(t, err)
	require.Equal(t, "label1.jpg", file.Name)
	require.Equal(t, "image/jpeg", file.ContentType)
	require.Equal(t, []byte("jpegdata"), file.Data)

	_, err = f.FetchURL(context.Background(), srv.URL+"/missing.jpg")
	require.ErrorContains(t, err, "HTTP 404")

	_, err = f.FetchURL(context.Background(), "file:///etc/passwd")
	require.Error(t, err)
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(bytes.NewReader(make([]byte, MaxImageSize)))
	require.NoError(t, err)
	require.Len(t, data, MaxImageSize)

	_, err = ReadLimited(bytes.NewReader(make([]byte, MaxImageSize+1)))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.JPG"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	single := filepath.Join(t.TempDir(), "c.gif")
	require.NoError(t, os.WriteFile(single, []byte("c"), 0644))

	files, err := LoadPaths([]string{dir, single})
	require.NoError(t, err)
	require.Len(t, files, 3)
	require.Equal(t, "a.JPG", files[0].Name)
	require.Equal(t, "image/jpeg", files[0].ContentType)
	require.Equal(t, "b.png", files[1].Name)
	require.Equal(t, "c.gif", files[2].Name)

	_, err = LoadPaths([]string{filepath.Join(dir, "nope.jpg")})
	require.Error(t, err)
}
