package app

import (
	"context"

	"ats/internal/domain/job"
	"ats/internal/domain/user"
)

type AdminService struct {
	users user.Repository
	jobs  job.Repository
}

func NewAdminService(users user.Repository, jobs job.Repository) *AdminService {
	return &AdminService{users: users, jobs: jobs}
}

type DashboardStats struct {
	TotalUsers int64 `json:"total_users"`
	Recruiters int64 `json:"recruiters"`
	Candidates int64 `json:"candidates"`
	TotalJobs  int64 `json:"total_jobs"`
	OpenJobs   int64 `json:"open_jobs"`
	ClosedJobs int64 `json:"closed_jobs"`
}

func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Recruiters, err = s.users.CountByRole(ctx, user.RoleRecruiter); err != nil {
		return nil, err
	}
	if stats.Candidates, err = s.users.CountByRole(ctx, user.RoleCandidate); err != nil {
		return nil, err
	}
	if stats.TotalJobs, err = s.jobs.Count(ctx); err != nil {
		return nil, err
	}
	if stats.OpenJobs, err = s.jobs.CountByStatus(ctx, job.StatusOpen); err != nil {
		return nil, err
	}
	if stats.ClosedJobs, err = s.jobs.CountByStatus(ctx, job.StatusClosed); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AdminService) Users(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) Jobs(ctx context.Context) ([]job.Job, error) {
	return s.jobs.List(ctx)
}
