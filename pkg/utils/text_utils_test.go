package utils

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// TestWrapText 测试文本换行功能
// basicfont.Face7x13 每个字符固定 7 像素宽
func TestWrapText(t *testing.T) {
	font := text.NewGoXFace(basicfont.Face7x13)

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{
			name:     "短文本不换行",
			input:    "model not found",
			maxWidth: 1000,
			want:     []string{"model not found"},
		},
		{
			name:     "按单词换行",
			input:    "load model data/models/x.yaml: model not found",
			maxWidth: 20 * 7,
			want:     []string{"load model", "data/models/x.yaml:", "model not found"},
		},
		{
			name:     "超长单词强制断行",
			input:    "abcdefghij",
			maxWidth: 4 * 7,
			want:     []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "空文本",
			input:    "  ",
			maxWidth: 100,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if strings.Join(lines, "|") != strings.Join(tt.want, "|") || len(lines) != len(tt.want) {
				t.Fatalf("WrapText(%q, %.0f) = %q, want %q", tt.input, tt.maxWidth, lines, tt.want)
			}
			for _, line := range lines {
				if w := measureTextWidth(line, font); w > tt.maxWidth {
					t.Errorf("line %q width %.0f exceeds %.0f", line, w, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapText_NilFont 没有字体时原样返回一行
func TestWrapText_NilFont(t *testing.T) {
	lines := WrapText("a  b", nil, 10)
	if len(lines) != 1 || lines[0] != "a b" {
		t.Errorf("WrapText with nil font = %q", lines)
	}
}
