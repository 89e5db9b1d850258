package ports

import "time"

// FileTimes reads file system timestamps.
//
//go:generate mockgen -source=filetimes.go -destination=mocks/mock_filetimes.go -package=mocks
type FileTimes interface {
	// LastWriteTime returns the modification time of a file, or the zero time when it does not exist.
	LastWriteTime(path string) time.Time
	// CreationTime returns the creation time of a directory, or the zero time when it does not exist.
	CreationTime(path string) time.Time
}
