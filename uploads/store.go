package uploads

import (
	"sync"
	"time"
)

// Status is the lifecycle state of an upload job. success, partial and
// error are terminal; the UI removes acknowledged jobs.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusPartial   Status = "partial"
	StatusError     Status = "error"
)

// FailedFile records one file of a batch that could not be processed.
// Reason, Kind and StatusCode are produced by the upload workflow and
// stored verbatim for display.
type FailedFile struct {
	Name       string `json:"name"`
	Reason     string `json:"reason"`
	Attempts   int    `json:"attempts"`
	Kind       string `json:"kind,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`
}

// Job tracks one batch upload. The registry is volatile; jobs do not
// survive a process restart.
type Job struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	FilesCount   int          `json:"files_count"`
	Progress     int          `json:"progress"` // 0-100
	Status       Status       `json:"status"`
	Error        string       `json:"error,omitempty"`
	TotalFiles   *int         `json:"total_files,omitempty"`
	SuccessCount *int         `json:"success_count,omitempty"`
	FailedCount  *int         `json:"failed_count,omitempty"`
	FailedFiles  []FailedFile `json:"failed_files,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Summary carries the completion fields merged into a job by
// MarkPartial. Nil fields keep the job's previous value.
type Summary struct {
	Error        *string
	TotalFiles   *int
	SuccessCount *int
	FailedCount  *int
	FailedFiles  []FailedFile
}

// Patch is a merge-patch applied by SetResult. It bypasses the status
// transitions; nil fields are left untouched.
type Patch struct {
	Status       *Status
	Progress     *int
	Error        *string
	TotalFiles   *int
	SuccessCount *int
	FailedCount  *int
	FailedFiles  []FailedFile
}

// Store is an in-memory registry of upload jobs keyed by id and ordered
// by enqueue time. All mutators are safe for concurrent use; updates to
// the same id are last-writer-wins. Mutations on unknown or removed ids
// are silent no-ops, so a worker finishing after the UI removed its job
// does no harm.
//
// Job ids must be unique per Enqueue; the store does not police
// duplicates.
type Store struct {
	mu   sync.Mutex
	jobs []*Job
	byID map[string]*Job
}

// NewStore creates an empty job registry.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Job)}
}

// Enqueue registers a new job. Status defaults to uploading and
// progress to zero when unset; CreatedAt is stamped if the caller left
// it zero.
func (s *Store) Enqueue(job Job) {
	if job.Status == "" {
		job.Status = StatusUploading
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	j := job
	s.jobs = append(s.jobs, &j)
	s.byID[j.ID] = &j
}

// UpdateProgress sets the job's progress (clamped to 0-100) and forces
// its status to uploading.
func (s *Store) UpdateProgress(id string, progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.byID[id]
	if !ok {
		return
	}
	j.Progress = progress
	j.Status = StatusUploading
}

// MarkSuccess moves the job to its terminal success state with full
// progress.
func (s *Store) MarkSuccess(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.byID[id]
	if !ok {
		return
	}
	j.Status = StatusSuccess
	j.Progress = 100
}

// MarkError moves the job to its terminal error state. Progress is left
// where the last update put it.
func (s *Store) MarkError(id string, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.byID[id]
	if !ok {
		return
	}
	j.Status = StatusError
	j.Error = errMsg
}

// MarkPartial moves the job to its terminal partial state with full
// progress and merges the supplied summary fields. Fields left nil in
// the summary retain their previous value.
func (s *Store) MarkPartial(id string, summary Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.byID[id]
	if !ok {
		return
	}
	j.Status = StatusPartial
	j.Progress = 100
	if summary.Error != nil {
		j.Error = *summary.Error
	}
	if summary.TotalFiles != nil {
		j.TotalFiles = summary.TotalFiles
	}
	if summary.SuccessCount != nil {
		j.SuccessCount = summary.SuccessCount
	}
	if summary.FailedCount != nil {
		j.FailedCount = summary.FailedCount
	}
	if summary.FailedFiles != nil {
		j.FailedFiles = summary.FailedFiles
	}
}

// SetResult applies a generic merge-patch to the job without enforcing
// the status machine. Used when a caller already holds the final record
// and wants one atomic update.
func (s *Store) SetResult(id string, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.byID[id]
	if !ok {
		return
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	if patch.Progress != nil {
		j.Progress = *patch.Progress
	}
	if patch.Error != nil {
		j.Error = *patch.Error
	}
	if patch.TotalFiles != nil {
		j.TotalFiles = patch.TotalFiles
	}
	if patch.SuccessCount != nil {
		j.SuccessCount = patch.SuccessCount
	}
	if patch.FailedCount != nil {
		j.FailedCount = patch.FailedCount
	}
	if patch.FailedFiles != nil {
		j.FailedFiles = patch.FailedFiles
	}
}

// Remove deletes the job unconditionally. No-op if absent; later
// mutations on the removed id are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, j := range s.jobs {
		if j.ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			break
		}
	}
}

// Jobs returns a snapshot of all jobs in enqueue order.
func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = *j
	}
	return out
}

// Get returns a snapshot of one job.
func (s *Store) Get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.byID[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}
