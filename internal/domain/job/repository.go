package job

import (
	"context"

	"ats/internal/common"
)

type Repository interface {
	Create(ctx context.Context, posting Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]Job, error)
	ListOpen(ctx context.Context) ([]Job, error)
	List(ctx context.Context) ([]Job, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
