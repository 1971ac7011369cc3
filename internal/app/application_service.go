package app

import (
	"context"
	"fmt"
	"time"

	"ats/internal/common"
	"ats/internal/domain/application"
	"ats/internal/domain/job"
	"ats/internal/domain/resume"
	"ats/internal/domain/user"
	"ats/internal/storage"
)

// ApplicationService coordinates the apply workflow and recruiter-driven
// status transitions. It is the only writer of application state.
type ApplicationService struct {
	apps    application.Repository
	jobs    job.Repository
	users   user.Repository
	resumes resume.Repository
	store   ResumeStore
	authz   Authorizer
	logger  Logger
}

func NewApplicationService(apps application.Repository, jobs job.Repository, users user.Repository, resumes resume.Repository, store ResumeStore, logger Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, users: users, resumes: resumes, store: store, logger: logger}
}

// ApplyReceipt confirms a successful application, combining the identifying
// fields of the application and its resume.
type ApplyReceipt struct {
	ApplicationID  common.UUID        `json:"application_id"`
	JobID          common.UUID        `json:"job_id"`
	JobTitle       string             `json:"job_title"`
	CandidateName  string             `json:"candidate_name"`
	Status         application.Status `json:"status"`
	AppliedAt      time.Time          `json:"applied_at"`
	ResumeID       common.UUID        `json:"resume_id"`
	ResumeFileName string             `json:"resume_file_name"`
}

// Apply runs the apply-for-job workflow: ordered fail-fast validation, resume
// file write, then application + resume rows in one transaction.
//
// The file is written before the transaction so only its locator enters the
// database. If the transaction fails afterwards the file is removed best
// effort; a crash between the two can leave an orphan file, which is accepted
// and left to out-of-band cleanup. The reverse is never possible: an
// application row cannot be committed without its resume row.
func (s *ApplicationService) Apply(ctx context.Context, candidateID, jobID common.UUID, upload storage.ResumeUpload) (*ApplyReceipt, error) {
	candidate, err := s.users.GetByID(ctx, candidateID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeNotFound, "authenticated user not found, token may be stale", nil)
		}
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeNotAvailable, "job is not accepting applications", nil)
	}
	if posting.RecruiterID == candidateID {
		return nil, common.NewError(common.CodeForbidden, "recruiters cannot apply to their own jobs", nil)
	}
	// Friendly pre-check only; two concurrent applies can both pass it. The
	// unique constraint inside CreateWithResume is the real barrier.
	if _, err := s.apps.FindByJobAndCandidate(ctx, jobID, candidateID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if err := storage.ValidateUpload(upload); err != nil {
		return nil, err
	}
	path, err := s.store.Save(upload)
	if err != nil {
		return nil, err
	}
	app, res, err := s.apps.CreateWithResume(ctx,
		application.Application{JobID: jobID, CandidateID: candidateID, Status: application.StatusApplied},
		resume.Resume{FileName: upload.FileName, StoragePath: path},
	)
	if err != nil {
		if removeErr := s.store.Remove(path); removeErr != nil {
			s.logError(fmt.Sprintf("orphan resume file left behind path=%s: %v", path, removeErr))
		}
		return nil, err
	}
	s.logInfo(fmt.Sprintf("application created application_id=%s job_id=%s candidate_id=%s", app.ID, jobID, candidateID))
	return &ApplyReceipt{
		ApplicationID:  app.ID,
		JobID:          posting.ID,
		JobTitle:       posting.Title,
		CandidateName:  candidate.Name,
		Status:         app.Status,
		AppliedAt:      app.AppliedAt,
		ResumeID:       res.ID,
		ResumeFileName: res.FileName,
	}, nil
}

// UpdateStatus performs a recruiter-driven transition: resolve, ownership
// check, state-machine check, persist. Nothing but the status changes.
func (s *ApplicationService) UpdateStatus(ctx context.Context, recruiterID, applicationID common.UUID, next application.Status) (*application.Application, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanManageApplication(recruiterID, posting); err != nil {
		return nil, err
	}
	if !application.IsValidTransition(app.Status, next) {
		return nil, common.NewError(common.CodeInvalidTransition,
			fmt.Sprintf("cannot change application status from %s to %s", app.Status, next), nil)
	}
	updated, err := s.apps.UpdateStatus(ctx, applicationID, next)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("application status changed application_id=%s from=%s to=%s", applicationID, app.Status, next))
	return updated, nil
}

// DashboardEntry is one card on the candidate dashboard.
type DashboardEntry struct {
	ApplicationID  common.UUID        `json:"application_id"`
	JobID          common.UUID        `json:"job_id"`
	JobTitle       string             `json:"job_title"`
	JobLocation    string             `json:"job_location"`
	RecruiterName  string             `json:"recruiter_name"`
	Status         application.Status `json:"status"`
	ResumeUploaded bool               `json:"resume_uploaded"`
	AppliedAt      time.Time          `json:"applied_at"`
}

func (s *ApplicationService) Dashboard(ctx context.Context, candidateID common.UUID) ([]DashboardEntry, error) {
	apps, err := s.apps.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	entries := make([]DashboardEntry, 0, len(apps))
	for _, app := range apps {
		posting, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		recruiterName := ""
		if recruiter, err := s.users.GetByID(ctx, posting.RecruiterID); err == nil {
			recruiterName = recruiter.Name
		}
		resumeUploaded := false
		if _, err := s.resumes.GetByApplicationID(ctx, app.ID); err == nil {
			resumeUploaded = true
		}
		entries = append(entries, DashboardEntry{
			ApplicationID:  app.ID,
			JobID:          posting.ID,
			JobTitle:       posting.Title,
			JobLocation:    posting.Location,
			RecruiterName:  recruiterName,
			Status:         app.Status,
			ResumeUploaded: resumeUploaded,
			AppliedAt:      app.AppliedAt,
		})
	}
	return entries, nil
}

func (s *ApplicationService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}

func (s *ApplicationService) logError(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg)
}
