// Package output writes rendered conversion results to disk. Targets are
// either an explicit file path or a directory, in which case the filename
// is derived from the source URL (e.g. example_com_docs_intro.md).
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Write stores data at the target path, creating parent directories as
// needed. When target is an existing directory, the filename is derived
// from sourceURL plus ext. The final path is returned.
func Write(target, sourceURL string, data []byte, ext string) (string, error) {
	path := target
	if isDir(target) {
		path = filepath.Join(target, FilenameFromURL(sourceURL)+ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromURL converts a URL into a flat filename:
// https://example.com/docs/intro becomes example_com_docs_intro.
// Non-URL input (raw HTML conversions have no source) maps to "document".
func FilenameFromURL(rawURL string) string {
	if rawURL == "" {
		return "document"
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "document"
	}

	parts := []string{sanitize(parsed.Host)}
	for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if seg != "" {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
