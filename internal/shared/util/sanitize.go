package util

import (
	"errors"
	"strings"
)

// SanitizeFileName removes path separators, whitespace and traversal patterns
// from uploaded file names before they become storage keys.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
