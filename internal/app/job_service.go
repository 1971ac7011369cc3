package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ats/internal/common"
	"ats/internal/domain/application"
	"ats/internal/domain/job"
	"ats/internal/domain/resume"
	"ats/internal/domain/user"
)

type JobService struct {
	jobs    job.Repository
	users   user.Repository
	apps    application.Repository
	resumes resume.Repository
	authz   Authorizer
	logger  Logger
}

func NewJobService(jobs job.Repository, users user.Repository, apps application.Repository, resumes resume.Repository, logger Logger) *JobService {
	return &JobService{jobs: jobs, users: users, apps: apps, resumes: resumes, logger: logger}
}

type JobInput struct {
	Title       string
	Description string
	Location    string
}

func (s *JobService) Create(ctx context.Context, recruiterID common.UUID, input JobInput) (*job.Job, error) {
	fields := map[string]string{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields["title"] = "title is required"
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		fields["description"] = "description is required"
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		fields["location"] = "location is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid job", fields)
	}
	created, err := s.jobs.Create(ctx, job.Job{
		RecruiterID: recruiterID,
		Title:       title,
		Description: description,
		Location:    location,
		Status:      job.StatusOpen,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("job created job_id=%s recruiter_id=%s", created.ID, recruiterID))
	return created, nil
}

func (s *JobService) ListMine(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	return s.jobs.ListByRecruiter(ctx, recruiterID)
}

// UpdateStatus opens or closes a job. Only the owning recruiter may do this.
func (s *JobService) UpdateStatus(ctx context.Context, recruiterID, jobID common.UUID, status job.Status) error {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := s.authz.CanManageJob(recruiterID, posting); err != nil {
		return err
	}
	if err := s.jobs.UpdateStatus(ctx, jobID, status); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("job status changed job_id=%s status=%s", jobID, status))
	return nil
}

// ListOpen backs the candidate browse page; CLOSED jobs are never listed.
func (s *JobService) ListOpen(ctx context.Context) ([]job.Job, error) {
	return s.jobs.ListOpen(ctx)
}

// GetOpen fetches a job for a candidate. A CLOSED job is reported as not
// available rather than hidden, matching the apply-time error.
func (s *JobService) GetOpen(ctx context.Context, jobID common.UUID) (*job.Job, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeNotAvailable, "job is not accepting applications", nil)
	}
	return posting, nil
}

// Applicant is one row of a recruiter's applicant list for a job.
type Applicant struct {
	ApplicationID  common.UUID        `json:"application_id"`
	CandidateID    common.UUID        `json:"candidate_id"`
	CandidateName  string             `json:"candidate_name"`
	CandidateEmail string             `json:"candidate_email"`
	Status         application.Status `json:"status"`
	AppliedAt      time.Time          `json:"applied_at"`
	ResumeID       *common.UUID       `json:"resume_id,omitempty"`
	ResumeFileName string             `json:"resume_file_name,omitempty"`
	ResumeUploaded bool               `json:"resume_uploaded"`
}

func (s *JobService) Applicants(ctx context.Context, recruiterID, jobID common.UUID) ([]Applicant, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanManageJob(recruiterID, posting); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	applicants := make([]Applicant, 0, len(apps))
	for _, app := range apps {
		entry := Applicant{
			ApplicationID: app.ID,
			CandidateID:   app.CandidateID,
			Status:        app.Status,
			AppliedAt:     app.AppliedAt,
		}
		if candidate, err := s.users.GetByID(ctx, app.CandidateID); err == nil {
			entry.CandidateName = candidate.Name
			entry.CandidateEmail = candidate.Email
		}
		if res, err := s.resumes.GetByApplicationID(ctx, app.ID); err == nil {
			id := res.ID
			entry.ResumeID = &id
			entry.ResumeFileName = res.FileName
			entry.ResumeUploaded = true
		}
		applicants = append(applicants, entry)
	}
	return applicants, nil
}

func (s *JobService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
