package workers

import (
	"fmt"
	"testing"

	"github.com/omegonstudio/fotospatagonia-backend/uploads"
)

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		err       error
		wantKind  string
		retryable bool
	}{
		{fmt.Errorf("%w: .bmp", errUnsupportedFormat), "unsupported_format", false},
		{fmt.Errorf("%w: decode failed", errProcessing), "processing", false},
		{fmt.Errorf("%w: disk full", errStorage), "storage", true},
		{fmt.Errorf("%w: constraint", errDatabase), "database", true},
		{fmt.Errorf("something else"), "unknown", false},
	}
	for _, tc := range cases {
		got := classifyFailure("a.jpg", tc.err)
		if got.Kind != tc.wantKind {
			t.Errorf("classifyFailure(%v): kind = %q, want %q", tc.err, got.Kind, tc.wantKind)
		}
		if got.Retryable != tc.retryable {
			t.Errorf("classifyFailure(%v): retryable = %v, want %v", tc.err, got.Retryable, tc.retryable)
		}
		if got.Attempts != 1 {
			t.Errorf("classifyFailure(%v): attempts = %d, want 1", tc.err, got.Attempts)
		}
	}
}

func TestFinishBatchAllSucceeded(t *testing.T) {
	tracker := uploads.NewStore()
	tracker.Enqueue(uploads.Job{ID: "job-1", FilesCount: 3})
	tracker.UpdateProgress("job-1", 100)

	FinishBatch(tracker, "job-1", 3, nil)

	job, _ := tracker.Get("job-1")
	if job.Status != uploads.StatusSuccess {
		t.Fatalf("status = %q, want %q", job.Status, uploads.StatusSuccess)
	}
	if job.Progress != 100 {
		t.Errorf("progress = %d, want 100", job.Progress)
	}
}

func TestFinishBatchAllFailed(t *testing.T) {
	tracker := uploads.NewStore()
	tracker.Enqueue(uploads.Job{ID: "job-1", FilesCount: 2})
	tracker.UpdateProgress("job-1", 40)

	failed := []uploads.FailedFile{
		{Name: "a.jpg", Reason: "storage failure", Kind: "storage", Retryable: true},
		{Name: "b.jpg", Reason: "storage failure", Kind: "storage", Retryable: true},
	}
	FinishBatch(tracker, "job-1", 2, failed)

	job, _ := tracker.Get("job-1")
	if job.Status != uploads.StatusError {
		t.Fatalf("status = %q, want %q", job.Status, uploads.StatusError)
	}
	if job.Progress != 40 {
		t.Errorf("progress = %d, want 40 (error leaves progress untouched)", job.Progress)
	}
	if job.Error != "all 2 files failed" {
		t.Errorf("error = %q, want %q", job.Error, "all 2 files failed")
	}
	if len(job.FailedFiles) != 2 {
		t.Errorf("failed files = %d, want 2", len(job.FailedFiles))
	}
	if job.FailedCount == nil || *job.FailedCount != 2 {
		t.Errorf("failed count = %v, want 2", job.FailedCount)
	}
}

func TestFinishBatchPartial(t *testing.T) {
	tracker := uploads.NewStore()
	tracker.Enqueue(uploads.Job{ID: "job-1", FilesCount: 4})

	failed := []uploads.FailedFile{
		{Name: "c.png", Reason: "processing failure: decode", Kind: "processing"},
	}
	FinishBatch(tracker, "job-1", 4, failed)

	job, _ := tracker.Get("job-1")
	if job.Status != uploads.StatusPartial {
		t.Fatalf("status = %q, want %q", job.Status, uploads.StatusPartial)
	}
	if job.Progress != 100 {
		t.Errorf("progress = %d, want 100", job.Progress)
	}
	if job.SuccessCount == nil || *job.SuccessCount != 3 {
		t.Errorf("success count = %v, want 3", job.SuccessCount)
	}
	if job.FailedCount == nil || *job.FailedCount != 1 {
		t.Errorf("failed count = %v, want 1", job.FailedCount)
	}
	if job.Error != "1 of 4 files failed" {
		t.Errorf("error = %q, want %q", job.Error, "1 of 4 files failed")
	}
}

func TestFinishBatchRemovedJobIsNoOp(t *testing.T) {
	tracker := uploads.NewStore()
	tracker.Enqueue(uploads.Job{ID: "job-1", FilesCount: 1})
	tracker.Remove("job-1")

	FinishBatch(tracker, "job-1", 1, nil)

	if _, ok := tracker.Get("job-1"); ok {
		t.Fatal("removed job resurfaced after FinishBatch")
	}
}
