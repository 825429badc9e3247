package gemini

import "testing"

func TestImageFormat(t *testing.T) {
	tests := map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpeg",
		"":           "jpeg",
		"text/plain": "jpeg",
	}
	for in, want := range tests {
		if got := imageFormat(in); got != want {
			t.Errorf("imageFormat(%q) = %q, want %q", in, got, want)
		}
	}
}
