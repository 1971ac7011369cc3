package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ats/internal/common"
	"ats/internal/domain/resume"
)

type ResumeRepository struct {
	db *sql.DB
}

func NewResumeRepository(db *sql.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) GetByID(ctx context.Context, id common.UUID) (*resume.Resume, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, application_id, file_name, storage_path, uploaded_at FROM resumes WHERE id = $1`, id)
	return scanResume(row)
}

func (r *ResumeRepository) GetByApplicationID(ctx context.Context, applicationID common.UUID) (*resume.Resume, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, application_id, file_name, storage_path, uploaded_at FROM resumes WHERE application_id = $1`, applicationID)
	return scanResume(row)
}

func scanResume(row *sql.Row) (*resume.Resume, error) {
	var res resume.Resume
	if err := row.Scan(&res.ID, &res.ApplicationID, &res.FileName, &res.StoragePath, &res.UploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "resume not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load resume", err)
	}
	return &res, nil
}
