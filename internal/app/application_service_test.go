package app

import (
	"context"
	"sync"
	"testing"

	"ats/internal/common"
	"ats/internal/domain/application"
	"ats/internal/domain/job"
	"ats/internal/domain/user"
)

type applyFixture struct {
	users     *fakeUserRepo
	jobs      *fakeJobRepo
	apps      *fakeApplicationRepo
	resumes   *fakeResumeRepo
	store     *fakeResumeStore
	service   *ApplicationService
	candidate *user.User
	recruiter *user.User
	posting   *job.Job
}

func newApplyFixture() *applyFixture {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	resumes := newFakeResumeRepo()
	apps := newFakeApplicationRepo(resumes)
	store := newFakeResumeStore()
	service := NewApplicationService(apps, jobs, users, resumes, store, noopLogger{})

	candidate := users.add("Alice", "alice@example.com", user.RoleCandidate, "hash")
	recruiter := users.add("Bob", "bob@example.com", user.RoleRecruiter, "hash")
	posting := jobs.add(recruiter.ID, "Backend Engineer", job.StatusOpen)
	return &applyFixture{
		users:     users,
		jobs:      jobs,
		apps:      apps,
		resumes:   resumes,
		store:     store,
		service:   service,
		candidate: candidate,
		recruiter: recruiter,
		posting:   posting,
	}
}

func TestApplicationServiceApply(t *testing.T) {
	f := newApplyFixture()

	receipt, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if receipt.Status != application.StatusApplied {
		t.Fatalf("expected APPLIED, got %s", receipt.Status)
	}
	if receipt.JobTitle != "Backend Engineer" || receipt.CandidateName != "Alice" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if receipt.ResumeFileName != "cv.pdf" {
		t.Fatalf("expected resume file name, got %q", receipt.ResumeFileName)
	}
	if receipt.AppliedAt.IsZero() {
		t.Fatal("expected applied_at to be set")
	}
	if f.store.fileCount() != 1 {
		t.Fatalf("expected one stored file, got %d", f.store.fileCount())
	}
	if _, err := f.resumes.GetByID(context.Background(), receipt.ResumeID); err != nil {
		t.Fatalf("expected resume record, got %v", err)
	}
}

func TestApplicationServiceApply_ClosedJob(t *testing.T) {
	f := newApplyFixture()
	closed := f.jobs.add(f.recruiter.ID, "Closed Role", job.StatusClosed)

	_, err := f.service.Apply(context.Background(), f.candidate.ID, closed.ID, pdfUpload("cv.pdf", 1024))
	if !common.Is(err, common.CodeNotAvailable) {
		t.Fatalf("expected not_available, got %v", err)
	}
	if f.store.fileCount() != 0 {
		t.Fatal("expected no file written for rejected apply")
	}
}

func TestApplicationServiceApply_UnknownJob(t *testing.T) {
	f := newApplyFixture()

	_, err := f.service.Apply(context.Background(), f.candidate.ID, common.NewUUID(), pdfUpload("cv.pdf", 1024))
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestApplicationServiceApply_StaleToken(t *testing.T) {
	f := newApplyFixture()

	_, err := f.service.Apply(context.Background(), common.NewUUID(), f.posting.ID, pdfUpload("cv.pdf", 1024))
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestApplicationServiceApply_OwnJob(t *testing.T) {
	f := newApplyFixture()

	_, err := f.service.Apply(context.Background(), f.recruiter.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestApplicationServiceApply_Duplicate(t *testing.T) {
	f := newApplyFixture()

	if _, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024)); err != nil {
		t.Fatalf("expected first apply to succeed, got %v", err)
	}
	_, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if f.store.fileCount() != 1 {
		t.Fatalf("expected only the first file kept, got %d", f.store.fileCount())
	}
}

func TestApplicationServiceApply_InvalidUpload(t *testing.T) {
	f := newApplyFixture()

	cases := map[string]func() (err error){
		"empty file": func() error {
			upload := pdfUpload("cv.pdf", 0)
			_, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, upload)
			return err
		},
		"oversized file": func() error {
			upload := pdfUpload("cv.pdf", 1024)
			upload.Size = 6 << 20
			_, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, upload)
			return err
		},
		"wrong content type": func() error {
			upload := pdfUpload("cv.docx", 1024)
			upload.ContentType = "application/msword"
			_, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, upload)
			return err
		},
	}
	for name, run := range cases {
		if err := run(); !common.Is(err, common.CodeValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
	if f.store.fileCount() != 0 {
		t.Fatal("expected no file written for invalid uploads")
	}
}

func TestApplicationServiceApply_RemovesFileWhenTransactionFails(t *testing.T) {
	f := newApplyFixture()
	f.apps.createErr = common.NewError(common.CodeInternal, "insert failed", nil)

	_, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if !common.Is(err, common.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if f.store.fileCount() != 0 {
		t.Fatal("expected saved file to be removed after failed transaction")
	}
	if len(f.store.removed) != 1 {
		t.Fatalf("expected one removal, got %d", len(f.store.removed))
	}
}

func TestApplicationServiceApply_ConcurrentDuplicateAdmitsOne(t *testing.T) {
	f := newApplyFixture()

	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case common.Is(err, common.CodeConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d", succeeded, conflicted)
	}
	if f.store.fileCount() != 1 {
		t.Fatalf("expected the losing file to be removed, got %d files", f.store.fileCount())
	}
}

func TestApplicationServiceUpdateStatus(t *testing.T) {
	f := newApplyFixture()
	receipt, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if err != nil {
		t.Fatalf("expected apply to succeed, got %v", err)
	}

	updated, err := f.service.UpdateStatus(context.Background(), f.recruiter.ID, receipt.ApplicationID, application.StatusShortlisted)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != application.StatusShortlisted {
		t.Fatalf("expected SHORTLISTED, got %s", updated.Status)
	}
	updated, err = f.service.UpdateStatus(context.Background(), f.recruiter.ID, receipt.ApplicationID, application.StatusHired)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != application.StatusHired {
		t.Fatalf("expected HIRED, got %s", updated.Status)
	}
}

func TestApplicationServiceUpdateStatus_InvalidTransitions(t *testing.T) {
	f := newApplyFixture()
	receipt, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if err != nil {
		t.Fatalf("expected apply to succeed, got %v", err)
	}

	// Skipping a stage and self-transition are both refused.
	if _, err := f.service.UpdateStatus(context.Background(), f.recruiter.ID, receipt.ApplicationID, application.StatusHired); !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition for APPLIED->HIRED, got %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), f.recruiter.ID, receipt.ApplicationID, application.StatusApplied); !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition for APPLIED->APPLIED, got %v", err)
	}

	if _, err := f.service.UpdateStatus(context.Background(), f.recruiter.ID, receipt.ApplicationID, application.StatusRejected); err != nil {
		t.Fatalf("expected rejection to succeed, got %v", err)
	}
	// Terminal states admit nothing.
	if _, err := f.service.UpdateStatus(context.Background(), f.recruiter.ID, receipt.ApplicationID, application.StatusShortlisted); !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition out of REJECTED, got %v", err)
	}

	stored, err := f.apps.GetByID(context.Background(), receipt.ApplicationID)
	if err != nil {
		t.Fatalf("expected application, got %v", err)
	}
	if stored.Status != application.StatusRejected {
		t.Fatalf("expected refused transitions to leave status untouched, got %s", stored.Status)
	}
}

func TestApplicationServiceUpdateStatus_OwnershipCheckedBeforeTransition(t *testing.T) {
	f := newApplyFixture()
	receipt, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if err != nil {
		t.Fatalf("expected apply to succeed, got %v", err)
	}
	other := f.users.add("Carol", "carol@example.com", user.RoleRecruiter, "hash")

	// A non-owner gets forbidden even for a transition that would also be
	// invalid, so the response does not leak lifecycle state.
	_, err = f.service.UpdateStatus(context.Background(), other.ID, receipt.ApplicationID, application.StatusHired)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestApplicationServiceUpdateStatus_UnknownApplication(t *testing.T) {
	f := newApplyFixture()

	_, err := f.service.UpdateStatus(context.Background(), f.recruiter.ID, common.NewUUID(), application.StatusShortlisted)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestApplicationServiceDashboard(t *testing.T) {
	f := newApplyFixture()
	receipt, err := f.service.Apply(context.Background(), f.candidate.ID, f.posting.ID, pdfUpload("cv.pdf", 1024))
	if err != nil {
		t.Fatalf("expected apply to succeed, got %v", err)
	}

	entries, err := f.service.Dashboard(context.Background(), f.candidate.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ApplicationID != receipt.ApplicationID {
		t.Fatalf("expected application %s, got %s", receipt.ApplicationID, entry.ApplicationID)
	}
	if entry.JobTitle != "Backend Engineer" || entry.RecruiterName != "Bob" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if !entry.ResumeUploaded {
		t.Fatal("expected resume_uploaded true")
	}

	empty, err := f.service.Dashboard(context.Background(), common.NewUUID())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty dashboard, got %d entries", len(empty))
	}
}
