package fileutil

import (
	"path/filepath"
	"strings"
)

const (
	FILE_TXT  = "txt"
	FILE_JSON = "json"
	FILE_CSV  = "csv"
)

// FileExt returns the lower-cased extension of filename without the dot.
func FileExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
