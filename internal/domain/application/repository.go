package application

import (
	"context"

	"ats/internal/common"
	"ats/internal/domain/resume"
)

type Repository interface {
	// CreateWithResume persists the application and its resume record in one
	// transaction. A unique violation on (candidate_id, job_id) surfaces as a
	// conflict-coded error.
	CreateWithResume(ctx context.Context, app Application, res resume.Resume) (*Application, *resume.Resume, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*Application, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
