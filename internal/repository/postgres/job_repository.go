package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ats/internal/common"
	"ats/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, posting job.Job) (*job.Job, error) {
	posting.ID = common.NewUUID()
	posting.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, recruiter_id, title, description, location, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		posting.ID, posting.RecruiterID, posting.Title, posting.Description, posting.Location, posting.Status, posting.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &posting, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, recruiter_id, title, description, location, status, created_at FROM jobs WHERE id = $1`, id)
	var posting job.Job
	if err := row.Scan(&posting.ID, &posting.RecruiterID, &posting.Title, &posting.Description, &posting.Location, &posting.Status, &posting.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &posting, nil
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	return r.list(ctx, `SELECT id, recruiter_id, title, description, location, status, created_at
		FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC`, recruiterID)
}

func (r *JobRepository) ListOpen(ctx context.Context) ([]job.Job, error) {
	return r.list(ctx, `SELECT id, recruiter_id, title, description, location, status, created_at
		FROM jobs WHERE status = $1 ORDER BY created_at DESC`, job.StatusOpen)
}

func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	return r.list(ctx, `SELECT id, recruiter_id, title, description, location, status, created_at
		FROM jobs ORDER BY created_at DESC`)
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update job status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return nil
}

func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	return count, nil
}

func (r *JobRepository) CountByStatus(ctx context.Context, status job.Status) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	return count, nil
}

func (r *JobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		var posting job.Job
		if err := rows.Scan(&posting.ID, &posting.RecruiterID, &posting.Title, &posting.Description, &posting.Location, &posting.Status, &posting.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, posting)
	}
	return items, nil
}
