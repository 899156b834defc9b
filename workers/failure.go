package workers

import (
	"errors"
	"fmt"

	"github.com/omegonstudio/fotospatagonia-backend/uploads"
)

// Failure stages. Each processed file fails at most once, wrapped in
// exactly one of these sentinels.
var (
	errUnsupportedFormat = errors.New("unsupported image format")
	errStorage           = errors.New("storage failure")
	errProcessing        = errors.New("processing failure")
	errDatabase          = errors.New("database failure")
)

func classifyFailure(name string, err error) uploads.FailedFile {
	f := uploads.FailedFile{
		Name:     name,
		Reason:   err.Error(),
		Attempts: 1,
	}
	switch {
	case errors.Is(err, errUnsupportedFormat):
		f.Kind = "unsupported_format"
	case errors.Is(err, errProcessing):
		f.Kind = "processing"
	case errors.Is(err, errStorage):
		f.Kind = "storage"
		f.Retryable = true
	case errors.Is(err, errDatabase):
		f.Kind = "database"
		f.Retryable = true
	default:
		f.Kind = "unknown"
	}
	return f
}

// FinishBatch records the terminal state of a batch on the tracker:
// success when every file landed, error when none did, partial otherwise.
func FinishBatch(tracker *uploads.Store, jobID string, total int, failed []uploads.FailedFile) {
	failedCount := len(failed)
	successCount := total - failedCount

	switch {
	case failedCount == 0:
		tracker.MarkSuccess(jobID)
	case successCount == 0:
		tracker.MarkError(jobID, fmt.Sprintf("all %d files failed", total))
		tracker.SetResult(jobID, uploads.Patch{
			TotalFiles:  &total,
			FailedCount: &failedCount,
			FailedFiles: failed,
		})
	default:
		errMsg := fmt.Sprintf("%d of %d files failed", failedCount, total)
		tracker.MarkPartial(jobID, uploads.Summary{
			Error:        &errMsg,
			TotalFiles:   &total,
			SuccessCount: &successCount,
			FailedCount:  &failedCount,
			FailedFiles:  failed,
		})
	}
}
