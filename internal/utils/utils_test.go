package utils

import "testing"

func TestCalculateDataMD5(t *testing.T) {
	got := CalculateDataMD5([]byte("hello"))
	if got != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("unexpected digest %s", got)
	}
}

func TestIsNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"00340434161094042557", true},
		{"123 456", false},
		{"12a", false},
		{"٣٤٥", true},
	}
	for _, tt := range tests {
		if got := IsNumber(tt.in); got != tt.want {
			t.Errorf("IsNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
