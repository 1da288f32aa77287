package browser

import (
	"strings"
)

// chrome reports attributes as a flat [name0, value0, name1, value1...] list

func attributeIndex(attrs []string, attr string) int {
	for i := 0; i+1 < len(attrs); i += 2 {
		if strings.EqualFold(attrs[i], attr) {
			return i
		}
	}
	return -1
}

// HasAttribute reports whether attr is in the list, names compare case insensitively
func HasAttribute(attrs []string, attr string) bool {
	return attributeIndex(attrs, attr) != -1
}

// GetAttribute value and whether it is present
func GetAttribute(attrs []string, attr string) (string, bool) {
	i := attributeIndex(attrs, attr)
	if i == -1 {
		return "", false
	}
	return attrs[i+1], true
}

// RemoveAttribute returns a copy of attrs without attr
func RemoveAttribute(attrs []string, attr string) []string {
	i := attributeIndex(attrs, attr)
	if i == -1 {
		return attrs
	}
	out := make([]string, 0, len(attrs)-2)
	out = append(out, attrs[:i]...)
	return append(out, attrs[i+2:]...)
}
