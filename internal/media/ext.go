// Package media holds the small pure helpers for turning post metadata into
// filesystem-safe destination paths.
package media

import "strings"

// allowedExtensions is the image allow-list. Video extensions (mp4) are
// handled by the v.redd.it resolver and intentionally not listed here.
var allowedExtensions = []string{"gif", "jpeg", "png", "jpg", "bmp"}

// ExtensionFromURL scans url from the end, collecting alphanumeric characters
// until a '.' (extension found) or a '/' or any other character (no
// extension) is hit. Case is preserved as found.
func ExtensionFromURL(url string) string {
	for i := len(url) - 1; i >= 0; i-- {
		c := url[i]
		switch {
		case c == '.':
			return url[i+1:]
		case c == '/':
			return ""
		case !isAlnum(c):
			return ""
		}
	}
	return ""
}

// ExtensionFromContentType derives an extension from a Content-Type header
// value, e.g. "image/jpeg" -> "jpeg". Returns "" when the value has no
// subtype.
func ExtensionFromContentType(contentType string) string {
	_, sub, found := strings.Cut(contentType, "/")
	if !found {
		return ""
	}
	if i := strings.IndexByte(sub, ';'); i >= 0 {
		sub = sub[:i]
	}
	return strings.TrimSpace(sub)
}

// IsExtensionAllowed reports membership in the image allow-list.
func IsExtensionAllowed(ext string) bool {
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// LastPathSegment returns the part of url after the final '/', ignoring a
// single trailing slash. Returns "" when url has no '/' at all.
func LastPathSegment(url string) string {
	if strings.HasSuffix(url, "/") {
		url = url[:len(url)-1]
	}
	i := strings.LastIndexByte(url, '/')
	if i < 0 {
		return ""
	}
	return url[i+1:]
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z'
}
