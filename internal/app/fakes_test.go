package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"ats/internal/common"
	"ats/internal/domain/application"
	"ats/internal/domain/job"
	"ats/internal/domain/resume"
	"ats/internal/domain/user"
	"ats/internal/storage"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[common.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[common.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	account.ID = common.NewUUID()
	account.CreatedAt = time.Now().UTC()
	r.byID[account.ID] = &account
	r.byEmail[account.Email] = &account
	copy := account
	return &copy, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	return &copy, nil
}

func (r *fakeUserRepo) UpdateName(ctx context.Context, id common.UUID, name string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.Name = name
	copy := *account
	return &copy, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]user.User, 0, len(r.byID))
	for _, account := range r.byID {
		users = append(users, *account)
	}
	return users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, account := range r.byID {
		if account.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) add(name, email string, role user.Role, passwordHash string) *user.User {
	account, err := r.Create(context.Background(), user.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
	})
	if err != nil {
		panic(err)
	}
	return account
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, posting job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting.ID = common.NewUUID()
	posting.CreatedAt = time.Now().UTC()
	r.byID[posting.ID] = &posting
	copy := posting
	return &copy, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting := r.byID[id]
	if posting == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copy := *posting
	return &copy, nil
}

func (r *fakeJobRepo) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs := make([]job.Job, 0)
	for _, posting := range r.byID {
		if posting.RecruiterID == recruiterID {
			jobs = append(jobs, *posting)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) ListOpen(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs := make([]job.Job, 0)
	for _, posting := range r.byID {
		if posting.Status == job.StatusOpen {
			jobs = append(jobs, *posting)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs := make([]job.Job, 0, len(r.byID))
	for _, posting := range r.byID {
		jobs = append(jobs, *posting)
	}
	return jobs, nil
}

func (r *fakeJobRepo) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting := r.byID[id]
	if posting == nil {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	posting.Status = status
	return nil
}

func (r *fakeJobRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *fakeJobRepo) CountByStatus(ctx context.Context, status job.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, posting := range r.byID {
		if posting.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeJobRepo) add(recruiterID common.UUID, title string, status job.Status) *job.Job {
	posting, err := r.Create(context.Background(), job.Job{
		RecruiterID: recruiterID,
		Title:       title,
		Description: "description",
		Location:    "Remote",
		Status:      status,
	})
	if err != nil {
		panic(err)
	}
	return posting
}

// fakeApplicationRepo mirrors the transactional contract of the real
// repository: CreateWithResume inserts both rows or neither, and a duplicate
// (candidate, job) pair fails with a conflict even when two callers pass the
// service-level pre-check at the same time.
type fakeApplicationRepo struct {
	mu        sync.Mutex
	byID      map[common.UUID]*application.Application
	resumes   *fakeResumeRepo
	createErr error
}

func newFakeApplicationRepo(resumes *fakeResumeRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		byID:    make(map[common.UUID]*application.Application),
		resumes: resumes,
	}
}

func (r *fakeApplicationRepo) CreateWithResume(ctx context.Context, app application.Application, res resume.Resume) (*application.Application, *resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.JobID == app.JobID && existing.CandidateID == app.CandidateID {
			return nil, nil, common.NewError(common.CodeConflict, "already applied to this job", nil)
		}
	}
	now := time.Now().UTC()
	app.ID = common.NewUUID()
	app.AppliedAt = now
	res.ID = common.NewUUID()
	res.ApplicationID = app.ID
	res.UploadedAt = now
	r.byID[app.ID] = &app
	r.resumes.put(res)
	appCopy := app
	resCopy := res
	return &appCopy, &resCopy, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.byID {
		if app.JobID == jobID && app.CandidateID == candidateID {
			copy := *app
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := make([]application.Application, 0)
	for _, app := range r.byID {
		if app.CandidateID == candidateID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := make([]application.Application, 0)
	for _, app := range r.byID {
		if app.JobID == jobID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	copy := *app
	return &copy, nil
}

type fakeResumeRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*resume.Resume
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{byID: make(map[common.UUID]*resume.Resume)}
}

func (r *fakeResumeRepo) put(res resume.Resume) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[res.ID] = &res
}

func (r *fakeResumeRepo) GetByID(ctx context.Context, id common.UUID) (*resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := r.byID[id]
	if res == nil {
		return nil, common.NewError(common.CodeNotFound, "resume not found", nil)
	}
	copy := *res
	return &copy, nil
}

func (r *fakeResumeRepo) GetByApplicationID(ctx context.Context, applicationID common.UUID) (*resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.byID {
		if res.ApplicationID == applicationID {
			copy := *res
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "resume not found", nil)
}

// fakeResumeStore keeps saved files in memory and records removals so tests
// can assert the file-level rollback after a failed transaction.
type fakeResumeStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	removed []string
	saveErr error
}

func newFakeResumeStore() *fakeResumeStore {
	return &fakeResumeStore{files: make(map[string][]byte)}
}

func (s *fakeResumeStore) Save(upload storage.ResumeUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	content, err := io.ReadAll(upload.Content)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("mem://%s_%s", common.NewUUID(), upload.FileName)
	s.files[path] = content
	return path, nil
}

func (s *fakeResumeStore) Open(path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[path]
	if !ok {
		return nil, common.NewError(common.CodeStorage, "failed to open resume file", nil)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (s *fakeResumeStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.removed = append(s.removed, path)
	return nil
}

func (s *fakeResumeStore) fileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type noopLogger struct{}

func (noopLogger) Info(msg string)  {}
func (noopLogger) Error(msg string) {}

func pdfUpload(name string, size int) storage.ResumeUpload {
	content := bytes.Repeat([]byte("a"), size)
	return storage.ResumeUpload{
		FileName:    name,
		ContentType: storage.AllowedContentType,
		Size:        int64(size),
		Content:     bytes.NewReader(content),
	}
}
