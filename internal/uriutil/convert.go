// Package uriutil converts between file system paths and file:// URIs.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

const fileScheme = "file://"

// PathToURI converts a file system path to a file:// URI. Relative paths are
// made absolute and every segment is percent-encoded:
//
//	/home/user/my project -> file:///home/user/my%20project
//	C:\proj               -> file:///C:/proj
//	\\server\share        -> file://server/share
func PathToURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if runtime.GOOS == "windows" && strings.HasPrefix(abs, `\\`) {
		return fileScheme + escapeSegments(filepath.ToSlash(strings.TrimPrefix(abs, `\\`)))
	}

	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	return fileScheme + escapeSegments(abs)
}

func escapeSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a file system path. Strings that are
// not file URIs have any file:// prefix stripped and are otherwise returned
// with OS separators.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return fromSlash(strings.TrimPrefix(uri, fileScheme))
	}

	if parsed.Host != "" {
		if runtime.GOOS == "windows" {
			return `\\` + parsed.Host + strings.ReplaceAll(parsed.Path, "/", `\`)
		}
		return parsed.Host + parsed.Path
	}
	return fromSlash(parsed.Path)
}

// fromSlash drops the slash before a drive letter (/C:/proj) and converts
// to OS separators
func fromSlash(path string) string {
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// IsFileURI reports whether uri uses the file scheme
func IsFileURI(uri string) bool {
	return strings.HasPrefix(uri, fileScheme)
}
