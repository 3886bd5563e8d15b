package utils

import (
	"strings"
	"unicode"
)

// DeduplicateSlice 去重字符串切片
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}

// Slugify 把模板名称转成URL安全的slug
// 字母数字保留并转小写，其余字符折叠成单个连字符
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // 抑制开头的连字符

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// TruncateText 按字符数截断文本，超长时在单词边界截断并追加省略号
func TruncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if maxLen <= 0 || len([]rune(text)) <= maxLen {
		return text
	}

	runes := []rune(text)[:maxLen]
	cut := string(runes)

	// 尽量不从单词中间截断
	if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
		cut = cut[:idx]
	}

	return strings.TrimRight(cut, " .,;:") + "..."
}

// Min 返回两个整数中的较小值
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
