package app

import (
	"context"
	"io"

	"ats/internal/common"
	"ats/internal/domain/application"
	"ats/internal/domain/job"
	"ats/internal/domain/resume"
)

// ResumeService serves stored resume files to recruiters. Authorization
// follows the edge resume → application → job → recruiter.
type ResumeService struct {
	resumes resume.Repository
	apps    application.Repository
	jobs    job.Repository
	store   ResumeStore
	authz   Authorizer
}

func NewResumeService(resumes resume.Repository, apps application.Repository, jobs job.Repository, store ResumeStore) *ResumeService {
	return &ResumeService{resumes: resumes, apps: apps, jobs: jobs, store: store}
}

// Download returns the resume record and a reader over its file. The caller
// must close the reader.
func (s *ResumeService) Download(ctx context.Context, recruiterID, resumeID common.UUID) (*resume.Resume, io.ReadCloser, error) {
	res, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, nil, err
	}
	app, err := s.apps.GetByID(ctx, res.ApplicationID)
	if err != nil {
		return nil, nil, err
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authz.CanManageApplication(recruiterID, posting); err != nil {
		return nil, nil, err
	}
	reader, err := s.store.Open(res.StoragePath)
	if err != nil {
		return nil, nil, common.NewError(common.CodeStorage, "resume file not readable", err)
	}
	return res, reader, nil
}
