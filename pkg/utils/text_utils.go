package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行），空文本返回 nil
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制按字符断行
func WrapText(textStr string, font text.Face, maxWidth float64) []string {
	words := strings.Fields(textStr)
	if len(words) == 0 {
		return nil
	}
	if font == nil || maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if measureTextWidth(testLine, font) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词本身超宽，按字符拆开
		for measureTextWidth(word, font) > maxWidth {
			head := splitToWidth(word, font, maxWidth)
			lines = append(lines, head)
			word = word[len(head):]
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// splitToWidth 返回 s 中不超过 maxWidth 的最长前缀，至少一个字符
func splitToWidth(s string, font text.Face, maxWidth float64) string {
	end := 0
	for end < len(s) {
		_, size := utf8.DecodeRuneInString(s[end:])
		if end > 0 && measureTextWidth(s[:end+size], font) > maxWidth {
			break
		}
		end += size
	}
	return s[:end]
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	width, _ := text.Measure(textStr, font, 0)
	return width
}
