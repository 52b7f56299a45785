package uriutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func skipUnlessPOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX-only test")
	}
}

func TestPathToURI(t *testing.T) {
	skipUnlessPOSIX(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"absolute", "/home/user/project/index.html", "file:///home/user/project/index.html"},
		{"root", "/", "file:///"},
		{"spaces", "/home/user/my project/app.vue", "file:///home/user/my%20project/app.vue"},
		{"unicode", "/home/user/文件.css", "file:///home/user/%E6%96%87%E4%BB%B6.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathToURI(tt.path))
		})
	}

	t.Run("relative paths become absolute", func(t *testing.T) {
		abs, err := filepath.Abs("index.html")
		assert.NoError(t, err)
		assert.Equal(t, PathToURI(abs), PathToURI("index.html"))
	})
}

func TestURIToPath(t *testing.T) {
	skipUnlessPOSIX(t)

	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"absolute", "file:///home/user/index.html", "/home/user/index.html"},
		{"percent-encoded", "file:///home/user/my%20project/app.vue", "/home/user/my project/app.vue"},
		{"drive letter", "file:///C:/proj/app.css", "C:/proj/app.css"},
		{"host", "file://server/share/a.html", "server/share/a.html"},
		{"not a file uri", "untitled:Untitled-1", "untitled:Untitled-1"},
		{"bare path", "/tmp/a.css", "/tmp/a.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URIToPath(tt.uri))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	skipUnlessPOSIX(t)

	for _, path := range []string{
		"/home/user/index.html",
		"/home/user/my project/app.vue",
		"/home/user/文件/a#b.css",
		"/srv/100%/x.tsx",
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, path, URIToPath(PathToURI(path)))
		})
	}
}

func TestIsFileURI(t *testing.T) {
	assert.True(t, IsFileURI("file:///a.html"))
	assert.False(t, IsFileURI("untitled:Untitled-1"))
	assert.False(t, IsFileURI("/a.html"))
}
