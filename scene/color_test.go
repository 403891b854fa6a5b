package scene

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", RGB(1, 0, 0)},
		{"00ff00", RGB(0, 1, 0)},
		{"#00f", RGB(0, 0, 1)},
		{"#ffffff00", RGBA(1, 1, 1, 0)},
		{"#0000", RGBA(0, 0, 0, 0)},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "#gggggg", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestFromColorUnpremultiplies(t *testing.T) {
	got := FromColor(color.RGBA{R: 128, G: 0, B: 0, A: 128})
	if got.R < 0.99 || got.R > 1.01 {
		t.Errorf("R = %v, want ~1", got.R)
	}
	if got.A < 0.49 || got.A > 0.51 {
		t.Errorf("A = %v, want ~0.5", got.A)
	}
	if FromColor(color.Transparent) != Transparent {
		t.Error("transparent should map to Transparent")
	}
}

func TestNRGBAClamps(t *testing.T) {
	got := RGBA(2, -1, 0.5, 1).NRGBA()
	want := color.NRGBA{R: 255, G: 0, B: 128, A: 255}
	if got != want {
		t.Errorf("NRGBA() = %+v, want %+v", got, want)
	}
}

func TestPremultiply(t *testing.T) {
	got := RGBA(1, 0.5, 0, 0.5).Premultiply()
	if got != RGBA(0.5, 0.25, 0, 0.5) {
		t.Errorf("Premultiply() = %+v", got)
	}
}
