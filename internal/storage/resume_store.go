package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ats/internal/common"
)

const (
	MaxResumeSize      = 5 << 20 // 5 MiB
	AllowedContentType = "application/pdf"
)

// ResumeUpload carries an incoming resume file through validation and storage.
type ResumeUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ValidateUpload enforces the resume constraints: non-empty, at most 5 MiB,
// PDF content type. Pure; runs before any byte is written.
func ValidateUpload(upload ResumeUpload) error {
	if upload.Content == nil || upload.Size == 0 {
		return common.NewValidationError("invalid resume", map[string]string{"file": "resume file cannot be empty"})
	}
	if upload.Size > MaxResumeSize {
		return common.NewValidationError("invalid resume", map[string]string{"file": "resume file exceeds the maximum allowed size of 5 MiB"})
	}
	if upload.ContentType != AllowedContentType {
		return common.NewValidationError("invalid resume", map[string]string{"file": "only PDF files are allowed for resume upload"})
	}
	return nil
}

// DiskStore writes resume files to a local directory under collision-resistant
// names of the form <uuid>_<original-file-name>.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "invalid upload directory", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to create upload directory", err)
	}
	return &DiskStore{dir: abs}, nil
}

func (s *DiskStore) Save(upload ResumeUpload) (string, error) {
	name := fmt.Sprintf("%s_%s", common.NewUUID(), sanitizeFileName(upload.FileName))
	path := filepath.Join(s.dir, name)
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", common.NewError(common.CodeStorage, "failed to save resume file", err)
	}
	if _, err := io.Copy(out, upload.Content); err != nil {
		out.Close()
		_ = os.Remove(path)
		return "", common.NewError(common.CodeStorage, "failed to save resume file", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", common.NewError(common.CodeStorage, "failed to save resume file", err)
	}
	return path, nil
}

func (s *DiskStore) Open(path string) (io.ReadCloser, error) {
	clean := filepath.Clean(path)
	if !strings.HasPrefix(clean, s.dir+string(filepath.Separator)) {
		return nil, common.NewError(common.CodeStorage, "resume file path outside upload directory", nil)
	}
	f, err := os.Open(clean)
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to open resume file", err)
	}
	return f, nil
}

// Remove deletes a stored file. Best effort on rollback paths; a missing file
// is not an error.
func (s *DiskStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return common.NewError(common.CodeStorage, "failed to remove resume file", err)
	}
	return nil
}

func sanitizeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "resume.pdf"
	}
	return strings.ReplaceAll(base, " ", "_")
}
