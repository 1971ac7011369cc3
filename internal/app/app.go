package app

import (
	"io"

	"ats/internal/storage"
)

// Logger is the minimal logging surface the service layer depends on.
type Logger interface {
	Info(msg string)
	Error(msg string)
}

// ResumeStore is the durable byte store for resume files. Implemented by
// storage.DiskStore; substituted in tests.
type ResumeStore interface {
	Save(upload storage.ResumeUpload) (string, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}
