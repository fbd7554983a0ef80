package media

import "strings"

// TitleMaxRunes caps sanitized titles used as destination filenames. Counted
// in Unicode codepoints, not bytes.
const TitleMaxRunes = 120

// SanitizeTitle replaces every character that is invalid in a filename with
// '_'. Operates on codepoints so multi-byte sequences are never split.
func SanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '/', '\\', '|', '?', '*', '"':
			return '_'
		}
		return r
	}, title)
}

// TruncateRunes shortens s to at most max codepoints, always cutting on a
// rune boundary.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
