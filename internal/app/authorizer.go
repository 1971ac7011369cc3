package app

import (
	"ats/internal/common"
	"ats/internal/domain/job"
)

// Authorizer decides whether a principal may act on a resource. Every write
// authorization in the system traces back to the job's owning recruiter: a job
// is managed by its recruiter, and an application is managed by the recruiter
// owning its job. A denial carries no more detail than the matching not-found
// message would, so it does not disclose resource existence.
type Authorizer struct{}

func (Authorizer) CanManageJob(principalID common.UUID, posting *job.Job) error {
	if posting == nil || posting.RecruiterID != principalID {
		return common.NewError(common.CodeForbidden, "access denied", nil)
	}
	return nil
}

// CanManageApplication authorizes actions on an application through the
// ownership edge application → job → recruiter. The caller resolves the
// owning job first.
func (Authorizer) CanManageApplication(principalID common.UUID, owningJob *job.Job) error {
	if owningJob == nil || owningJob.RecruiterID != principalID {
		return common.NewError(common.CodeForbidden, "access denied", nil)
	}
	return nil
}
