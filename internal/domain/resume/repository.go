package resume

import (
	"context"

	"ats/internal/common"
)

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*Resume, error)
	GetByApplicationID(ctx context.Context, applicationID common.UUID) (*Resume, error)
}
