package stickerlayers

import (
	"image/color"
	"testing"
)

func TestFillColorNRGBA(t *testing.T) {
	if got := Black.NRGBA(); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("black: got %v", got)
	}
	if got := Red.NRGBA(); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("red: got %v", got)
	}
	if Red.Colorful().Hex() != "#ff0000" {
		t.Errorf("red hex: got %s", Red.Colorful().Hex())
	}
}

func TestParseFillColor(t *testing.T) {
	tests := []struct {
		in      string
		want    FillColor
		wantErr bool
	}{
		{"black", Black, false},
		{"", Black, false},
		{" RED ", Red, false},
		{"#FF0000", Red, false},
		{"#000000", Black, false},
		{"blue", Black, true},
		{"#00ff00", Black, true},
	}
	for _, tt := range tests {
		got, err := ParseFillColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFillColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFillColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
