package resume

import (
	"time"

	"ats/internal/common"
)

// Resume is the file attachment created atomically with its application.
// Immutable after creation; there is no re-upload.
type Resume struct {
	ID            common.UUID `json:"id"`
	ApplicationID common.UUID `json:"application_id"`
	FileName      string      `json:"file_name"`
	StoragePath   string      `json:"-"`
	UploadedAt    time.Time   `json:"uploaded_at"`
}
