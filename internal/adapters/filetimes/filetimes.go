// Package filetimes reads file timestamps from the local file system.
package filetimes

import (
	"os"
	"time"
)

// FS implements ports.FileTimes with os.Stat.
type FS struct{}

// New creates a new FS.
func New() *FS {
	return &FS{}
}

// LastWriteTime returns the modification time of path, or the zero time when it does not exist.
func (FS) LastWriteTime(path string) time.Time {
	return modTime(path)
}

// CreationTime returns the time the directory at path was created, or the zero time
// when it does not exist. Creation times are not portable; the modification time of the
// directory entry serves instead, which changes when the directory is recreated.
func (FS) CreationTime(path string) time.Time {
	return modTime(path)
}

func modTime(path string) time.Time {
	if path == "" {
		return time.Time{}
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
