package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ats/internal/common"
	"ats/internal/domain/application"
	"ats/internal/domain/resume"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// CreateWithResume inserts the application and its resume row in a single
// transaction. The pre-insert duplicate check in the service is only an
// optimization for a friendly error; the unique constraint here is the source
// of truth, and its violation is translated to the same conflict error.
func (r *ApplicationRepository) CreateWithResume(ctx context.Context, app application.Application, res resume.Resume) (*application.Application, *resume.Resume, error) {
	now := time.Now().UTC()
	app.ID = common.NewUUID()
	app.AppliedAt = now
	res.ID = common.NewUUID()
	res.ApplicationID = app.ID
	res.UploadedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO applications (id, job_id, candidate_id, status, applied_at)
		VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.JobID, app.CandidateID, app.Status, app.AppliedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_applications_candidate_job") {
			return nil, nil, common.NewError(common.CodeConflict, "already applied to this job", err)
		}
		return nil, nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO resumes (id, application_id, file_name, storage_path, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		res.ID, res.ApplicationID, res.FileName, res.StoragePath, res.UploadedAt)
	if err != nil {
		return nil, nil, common.NewError(common.CodeInternal, "failed to create resume record", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, &res, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, job_id, candidate_id, status, applied_at FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, job_id, candidate_id, status, applied_at
		FROM applications WHERE job_id = $1 AND candidate_id = $2`, jobID, candidateID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT id, job_id, candidate_id, status, applied_at
		FROM applications WHERE candidate_id = $1 ORDER BY applied_at DESC`, candidateID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT id, job_id, candidate_id, status, applied_at
		FROM applications WHERE job_id = $1 ORDER BY applied_at DESC`, jobID)
}

// UpdateStatus changes only the status column; every other application field
// is immutable after creation.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.AppliedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	return items, nil
}

func scanApplication(row *sql.Row) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.AppliedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}
